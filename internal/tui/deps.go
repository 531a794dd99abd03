package tui

import (
	"context"
	"time"

	"github.com/syncflow/dashboard/internal/api"
	"github.com/syncflow/dashboard/internal/assistant"
	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

// TaskRepository is the task persistence used by the tasks page.
type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task model.Task) (model.Task, error)
	Update(ctx context.Context, task model.Task) error
	Delete(ctx context.Context, id int64) error
}

// Settings holds the polling parameters of the dashboard.
type Settings struct {
	StreamInterval    time.Duration
	InventoryInterval time.Duration
	TailWindow        int
}

// DefaultSettings returns the built-in polling parameters.
func DefaultSettings() Settings {
	return Settings{
		StreamInterval:    model.DefaultStreamInterval,
		InventoryInterval: model.DefaultInventoryInterval,
		TailWindow:        model.DefaultTailWindow,
	}
}

// Deps provides dependencies for page constructors.
type Deps struct {
	// Ctx bounds every source started by a page.
	Ctx      context.Context
	API      *api.Client
	Tasks    TaskRepository
	Chat     *assistant.Chat
	Notifier *Notifier
	Settings Settings
}

func (d Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// newSource builds a poll source for a deck.
func newSource[T any](name, errMsg string, interval time.Duration, tail int, fetch poll.FetchFunc[T]) *poll.Source[T] {
	return poll.New(poll.Config{
		Name:         name,
		Interval:     interval,
		Tail:         tail,
		ErrorMessage: errMsg,
	}, fetch)
}

// Page ids.
const (
	PageRoster         = "roster"
	PageEmployee       = "employee"
	PageManagement     = "management"
	PageTasks          = "tasks"
	PageCheckout       = "checkout"
	PageCheckoutDetail = "checkout-ip"
	PageChat           = "chat"
	PageAnalytics      = "analytics"
	PageSysInfo        = "sysinfo"
)

// DefaultPages declares the built-in pages in sidebar order.
func DefaultPages(deps Deps) []Page {
	return []Page{
		NewRosterPage(deps),
		NewEmployeePage(deps),
		NewManagementPage(deps),
		NewTasksPage(deps),
		NewCheckoutPage(deps),
		NewCheckoutDetailPage(deps),
		NewChatPage(deps),
		NewAnalyticsPage(),
		NewSysInfoPage(deps),
	}
}
