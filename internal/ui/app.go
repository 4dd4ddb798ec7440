// Package ui provides the Bubble Tea TUI for Casita: browse listings,
// view details, book stays, maintain a wishlist, and manage a session.
// The UI never mutates the stores directly; every action goes through
// a controller and the resulting resource stream is drained back into
// messages.
package ui

import (
	"context"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/casitahq/casita/internal/api"
	"github.com/casitahq/casita/internal/catalog"
	"github.com/casitahq/casita/internal/controller"
	"github.com/casitahq/casita/internal/prefs"
	"github.com/casitahq/casita/internal/resource"
	"github.com/casitahq/casita/internal/session"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewWishlist
	ViewTrips
	ViewAccount
	ViewBook
)

const uiTick = 2 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Catalog   *catalog.Store
	Session   *controller.Session
	Wishlist  *controller.Wishlist
	Bookings  *controller.Bookings
	Sessions  *session.Store
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx          context.Context
	catalogStore *catalog.Store
	sessionCtl   *controller.Session
	wishlistCtl  *controller.Wishlist
	bookingCtl   *controller.Bookings
	sessions     *session.Store
	prefsPath    string

	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	snapshot    catalog.Snapshot
	lastUpdated time.Time

	homeRow     int
	wishlistRow int
	tripsRow    int

	wishlistIDs []string
	bookings    []api.Booking

	status     string
	statusKind resource.State
	busy       bool

	authForm authForm
	bookForm bookForm
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themes[0].Name
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:          ctx,
		catalogStore: opts.Catalog,
		sessionCtl:   opts.Session,
		wishlistCtl:  opts.Wishlist,
		bookingCtl:   opts.Bookings,
		sessions:     opts.Sessions,
		prefsPath:    prefsPath,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentView:  ViewHome,
		authForm:     newAuthForm(),
		bookForm:     newBookForm(),
	}
}

// Run blocks until the context is cancelled or the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(uiTick)}
	if m.catalogStore != nil {
		cmds = append(cmds, fetchCatalogCmd(m.catalogStore))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(uiTick)}
		if m.catalogStore != nil {
			cmds = append(cmds, fetchCatalogCmd(m.catalogStore))
		}
		return m, tea.Batch(cmds...)

	case catalogMsg:
		m.snapshot = catalog.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampRows()
		return m, nil

	case authMsg:
		return m.handleAuth(msg)

	case wishlistMsg:
		return m.handleWishlist(msg)

	case bookingListMsg:
		return m.handleBookingList(msg)

	case bookingCreateMsg:
		return m.handleBookingCreate(msg)
	}

	return m, nil
}

func (m Model) handleAuth(msg authMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.busy = false
		return m, nil
	}
	switch msg.res.State {
	case resource.StateLoading:
		m.busy = true
		m.authForm.errs = nil
		m.authForm.remoteErr = ""
	case resource.StateSuccess:
		m.busy = false
		m.setStatus(resource.StateSuccess, "Signed in as "+msg.res.Value.Username)
		m.authForm.reset()
		m.currentView = ViewHome
		return m, tea.Batch(
			waitAuth(msg.ch),
			waitWishlist(m.wishlistCtl.Refresh(m.ctx)),
			waitBookingList(m.bookingCtl.Fetch(m.ctx)),
		)
	case resource.StateError:
		m.busy = false
		m.authForm.remoteErr = msg.res.Err
	}
	return m, waitAuth(msg.ch)
}

func (m Model) handleWishlist(msg wishlistMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	switch msg.res.State {
	case resource.StateLoading, resource.StateSuccess:
		if msg.res.HasValue {
			m.wishlistIDs = msg.res.Value
			sort.Strings(m.wishlistIDs)
			m.clampRows()
		}
	case resource.StateError:
		m.setStatus(resource.StateError, msg.res.Err)
		// Rollback already happened controller-side; re-read the set.
		m.wishlistIDs = m.wishlistCtl.IDs()
		sort.Strings(m.wishlistIDs)
		m.clampRows()
	}
	return m, waitWishlist(msg.ch)
}

func (m Model) handleBookingList(msg bookingListMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		return m, nil
	}
	switch msg.res.State {
	case resource.StateLoading, resource.StateSuccess:
		if msg.res.HasValue {
			m.bookings = msg.res.Value
			m.clampRows()
		}
	case resource.StateError:
		m.setStatus(resource.StateError, msg.res.Err)
		m.bookings = m.bookingCtl.Cached()
		m.clampRows()
	}
	return m, waitBookingList(msg.ch)
}

func (m Model) handleBookingCreate(msg bookingCreateMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.busy = false
		return m, nil
	}
	switch msg.res.State {
	case resource.StateLoading:
		m.busy = true
	case resource.StateSuccess:
		m.busy = false
		m.bookings = m.bookingCtl.Cached()
		m.setStatus(resource.StateSuccess, "Booked "+msg.res.Value.ListingTitle)
		m.bookForm.reset()
		m.currentView = ViewTrips
	case resource.StateError:
		m.busy = false
		m.bookForm.errMsg = msg.res.Err
	}
	return m, waitBookingCreate(msg.ch)
}

func (m *Model) setStatus(kind resource.State, text string) {
	m.statusKind = kind
	m.status = text
}

// clampRows keeps the selection cursors inside their lists after any
// data change.
func (m *Model) clampRows() {
	clamp := func(row, n int) int {
		if n == 0 {
			return 0
		}
		if row >= n {
			return n - 1
		}
		if row < 0 {
			return 0
		}
		return row
	}
	m.homeRow = clamp(m.homeRow, len(m.snapshot.Listings))
	m.wishlistRow = clamp(m.wishlistRow, len(m.wishlistIDs))
	m.tripsRow = clamp(m.tripsRow, len(m.bookings))
}
