package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/guilhermegouw/bindery/internal/bridge"
	"github.com/guilhermegouw/bindery/internal/events"
	"github.com/guilhermegouw/bindery/internal/models"
	"github.com/guilhermegouw/bindery/internal/pubsub"
	"github.com/guilhermegouw/bindery/internal/styles"
	"github.com/guilhermegouw/bindery/internal/viewmodel"
)

const topicOrderUpdated = "order-updated"

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the customer editing scenario and print each step",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := newWorkspace(configFrom(cmd))
			if err != nil {
				return err
			}
			defer ws.close()

			out := cmd.OutOrStdout()
			t := styles.CurrentTheme()
			fmt.Fprintln(out, styles.ApplyForegroundGrad("bindery demo", t.Primary, t.Secondary))
			fmt.Fprintln(out)
			_, err = runDemo(out, ws)
			return err
		},
	}
}

// demoResult is what the scenario observed.
type demoResult struct {
	updates        int
	senderIsEditor bool
	committedName  string
	lookedUp       string
	cancelledEmail string
	status         string
	unrelated      int
	purged         int
	bridged        []string
}

// bridgeLog records what the bus bridge would hand to a Bubble Tea program.
type bridgeLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *bridgeLog) Send(msg tea.Msg) {
	var line string
	switch m := msg.(type) {
	case bridge.CustomerUpdatedMsg:
		line = fmt.Sprintf("customer #%d %s", m.Customer.ID, m.Customer.Name)
	case bridge.EditEventMsg:
		line = fmt.Sprintf("edit %s #%d", m.Event.Type, m.Event.EntityID)
	case bridge.StatusMsg:
		line = "status: " + m.Text
	default:
		line = fmt.Sprintf("%T", msg)
	}
	l.mu.Lock()
	l.lines = append(l.lines, line)
	l.mu.Unlock()
}

func (l *bridgeLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// demoPrinter writes themed step lines.
type demoPrinter struct {
	w io.Writer
	t *styles.Theme
}

func (p demoPrinter) step(title string) {
	fmt.Fprintln(p.w, p.t.S().Title.Render("▸ "+title))
}

func (p demoPrinter) ok(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.t.S().Success.Render("✓ ")+p.t.S().Base.Render(fmt.Sprintf(format, args...)))
}

func (p demoPrinter) note(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+p.t.S().Muted.Render(fmt.Sprintf(format, args...)))
}

// registerTransientObserver subscribes a proxy that nothing keeps alive.
//
//go:noinline
func registerTransientObserver(bus *pubsub.Bus) error {
	p := pubsub.NewProxy("transient-observer")
	_, err := pubsub.Subscribe(p, bus, events.TopicCustomerUpdated,
		func(_ any, _ pubsub.Outgoing[events.Customer]) {})
	return err
}

func runDemo(w io.Writer, ws *workspace) (demoResult, error) {
	var res demoResult
	p := demoPrinter{w: w, t: styles.CurrentTheme()}
	bus := ws.hub.Bus

	p.step("Subscribers")
	if err := registerTransientObserver(bus); err != nil {
		return res, fmt.Errorf("registering observer: %w", err)
	}
	p.note("%d subscribers on %q, one of them unreferenced", bus.SubscriberCount(events.TopicCustomerUpdated), events.TopicCustomerUpdated)
	runtime.GC()
	res.purged = bus.Purge()
	p.ok("purged %d dead handle(s), %d live", res.purged, bus.SubscriberCount(events.TopicCustomerUpdated))

	p.step("Bridge")
	forwarded := &bridgeLog{}
	queue := bridge.NewQueue(forwarded)
	defer queue.Close()
	tb := bridge.NewTUIBridge(bus, queue)
	if err := tb.Start(context.Background()); err != nil {
		return res, err
	}
	defer tb.Stop()
	p.ok("bridge forwarding %q, %q and %q", events.TopicCustomerUpdated, events.TopicEditLifecycle, events.TopicStatus)

	p.step("Select")
	if err := ws.list.Select(1); err != nil {
		return res, fmt.Errorf("selecting customer: %w", err)
	}
	customer := ws.editor.Entity()
	if customer == nil {
		return res, errors.New("editor did not receive the selection")
	}
	p.ok("editor loaded #%d %s <%s>", customer.ID(), customer.Name(), customer.Email())

	p.step("Edit and commit")
	if err := ws.editor.BeginEdit(); err != nil {
		return res, fmt.Errorf("beginning edit: %w", err)
	}
	ws.editor.Entity().SetName("Jane Doe")
	p.note("staged name %q, dirty=%t", ws.editor.Entity().Name(), ws.editor.IsDirty())
	ws.editor.EndEdit()

	res.updates = ws.list.Updates()
	res.senderIsEditor = ws.list.LastSender() == any(ws.editor)
	if got, ok := ws.list.Get(1); ok {
		res.committedName = got.Name
	}
	p.ok("list received %d update(s), sender is editor: %t, name now %q", res.updates, res.senderIsEditor, res.committedName)

	p.step("Round trip")
	found, err := viewmodel.Lookup(bus, nil, 1)
	if err != nil {
		return res, err
	}
	if found != nil {
		res.lookedUp = found.Name
	}
	p.ok("lookup #1 answered %q", res.lookedUp)

	p.step("Edit and cancel")
	if err := ws.editor.BeginEdit(); err != nil {
		return res, fmt.Errorf("beginning edit: %w", err)
	}
	ws.editor.Entity().SetEmail("not-an-email")
	p.note("staged email errors: %v", ws.editor.Entity().ErrorsFor(models.PropEmail))
	ws.editor.CancelEdit()
	res.cancelledEmail = ws.editor.Entity().Email()
	p.ok("cancelled, email back to %q", res.cancelledEmail)

	p.step("Unrelated topic")
	bus.Wait()
	before := bus.Stats().Delivered
	if err := bus.Publish(topicOrderUpdated, nil, pubsub.NewOutgoing("order updated", 42)); err != nil {
		return res, err
	}
	res.unrelated = int(bus.Stats().Delivered - before)
	p.ok("%q reached %d subscriber(s)", topicOrderUpdated, res.unrelated)

	p.step("Status")
	if err := bus.Publish(events.TopicStatus, nil, pubsub.NewNotification("demo finished")); err != nil {
		return res, err
	}
	bus.Wait()
	res.status = ws.status.Message()
	p.ok("status bar shows %q", res.status)

	tb.Stop()
	queue.Close()
	res.bridged = forwarded.Lines()
	p.ok("bridge forwarded %d message(s)", len(res.bridged))
	for _, line := range res.bridged {
		p.note("%s", line)
	}

	fmt.Fprintln(w)
	p.note("%s", bus.DebugString())
	return res, nil
}
