// Package console is the interactive front end: a line-oriented loop that
// turns commands into Planner and Session calls and prints the results.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"reservequeue/internal/catalog"
	"reservequeue/internal/entities"
	apperrors "reservequeue/internal/errors"
	"reservequeue/internal/reservation"
	"reservequeue/internal/session"

	"github.com/sirupsen/logrus"
)

var (
	errUsage     = errors.New("usage")
	errNoAccount = errors.New("accounts are not available in this console")
	errOffline   = errors.New("no API server configured")
)

// Gateway is the part of the REST client the console uses.
type Gateway interface {
	catalog.HospitalLister
	ListTickets(ctx context.Context, token string) ([]entities.Ticket, error)
	ListAppointments(ctx context.Context, token string) ([]entities.Appointment, error)
	CreateTicket(ctx context.Context, hospitalID int, req entities.TicketRequest, token string) (*entities.Ticket, error)
	DeleteTicket(ctx context.Context, id, token string) (*entities.MessageResponse, error)
}

type Options struct {
	In      io.Reader
	Out     io.Writer
	Shops   *catalog.Future
	Store   *reservation.Store
	Session *session.Session
	API     Gateway
	// AssumeYes skips the confirmation before cancelling.
	AssumeYes bool
	Color     bool
}

type command struct {
	usage string
	help  string
	// auth commands need a logged-in session
	auth bool
	run  func(ctx context.Context, args []string) error
}

type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	render  renderer
	shops   *catalog.Future
	store   *reservation.Store
	session *session.Session
	api     Gateway
	yes     bool

	planner  *Planner
	commands map[string]command
	quit     bool
}

func New(opts Options) *Console {
	store := opts.Store
	if store == nil {
		store = reservation.NewStore(nil)
	}
	c := &Console{
		in:      bufio.NewScanner(opts.In),
		out:     opts.Out,
		render:  renderer{out: opts.Out, color: opts.Color},
		shops:   opts.Shops,
		store:   store,
		session: opts.Session,
		api:     opts.API,
		yes:     opts.AssumeYes,
	}
	c.commands = c.buildCommands()
	return c
}

// Run reads commands until EOF, "quit" or ctx is done. A failed command
// never ends the loop.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, `Welcome to the reservation console. Type "help" for commands.`)
	if c.session != nil && c.session.Authenticated() {
		fmt.Fprintf(c.out, "Logged in as %s.\n", c.session.User())
	}
	for !c.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}
		c.Exec(ctx, c.in.Text())
	}
	return nil
}

// Exec runs one command line.
func (c *Console) Exec(ctx context.Context, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := c.commands[name]
	if !ok {
		fmt.Fprintf(c.out, "Unknown command %q. Type \"help\".\n", name)
		return
	}
	if cmd.auth && (c.session == nil || !c.session.Authenticated()) {
		fmt.Fprintln(c.out, "Please log in to make reservations.")
		return
	}
	if err := cmd.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(c.out, "Usage: %s\n", cmd.usage)
			return
		}
		logrus.WithError(err).WithField("command", name).Debug("command failed")
		fmt.Fprintf(c.out, "Error: %s\n", userMessage(err))
	}
}

func userMessage(err error) string {
	var he *apperrors.HTTPError
	if errors.As(err, &he) && he.Message != "" {
		return he.Message
	}
	if errors.Is(err, session.ErrNotAuthenticated) {
		return "Please log in first."
	}
	if errors.Is(err, catalog.ErrShopNotFound) {
		return "No shop with that number."
	}
	if errors.Is(err, ErrNotEditing) {
		return `Nothing is being edited. Use "edit <id>" first.`
	}
	return reservation.Reason(err)
}

func (c *Console) loadPlanner(ctx context.Context) (*Planner, error) {
	if c.planner != nil {
		return c.planner, nil
	}
	select {
	case <-c.shops.Done():
	default:
		fmt.Fprintln(c.out, "Loading shops...")
	}
	cat, err := c.shops.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("load shops: %w", err)
	}
	c.planner = NewPlanner(cat, c.store)
	return c.planner, nil
}

// confirm asks a yes/no question on the input stream. Anything but y or yes
// is a no.
func (c *Console) confirm(question string) bool {
	if c.yes {
		return true
	}
	fmt.Fprintf(c.out, "%s [y/N] ", question)
	if !c.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(c.in.Text()))
	return answer == "y" || answer == "yes"
}

func (c *Console) buildCommands() map[string]command {
	return map[string]command{
		"help":   {usage: "help", help: "show this list", run: c.cmdHelp},
		"quit":   {usage: "quit", help: "leave the console", run: c.cmdQuit},
		"exit":   {usage: "exit", help: "leave the console", run: c.cmdQuit},
		"shops":  {usage: "shops", help: "list shops", run: c.cmdShops},
		"select": {usage: "select <shop-id>", help: "choose a shop for the form", auth: true, run: c.cmdSelect},
		"date":   {usage: "date <YYYY-MM-DD>", help: "choose a date for the form", auth: true, run: c.cmdDate},
		"reserve": {usage: "reserve [<shop-id> <YYYY-MM-DD>]", help: "book the selected shop and date", auth: true,
			run: c.cmdReserve},
		"form":   {usage: "form", help: "show the selected shop and date", auth: true, run: c.cmdForm},
		"list":   {usage: "list", help: "show your reservations", auth: true, run: c.cmdList},
		"view":   {usage: "view <id>", help: "show one reservation", auth: true, run: c.cmdView},
		"edit":   {usage: "edit <id>", help: "start editing a reservation", auth: true, run: c.cmdEdit},
		"save":   {usage: "save", help: "apply the edit", auth: true, run: c.cmdSave},
		"abort":  {usage: "abort", help: "discard the edit", auth: true, run: c.cmdAbort},
		"cancel": {usage: "cancel <id>", help: "cancel a reservation", auth: true, run: c.cmdCancel},

		"login":    {usage: "login <email> <password>", help: "log in", run: c.cmdLogin},
		"register": {usage: "register <name> <email> <password>", help: "create an account", run: c.cmdRegister},
		"logout":   {usage: "logout", help: "log out", run: c.cmdLogout},
		"whoami":   {usage: "whoami", help: "show the current user", run: c.cmdWhoami},

		"hospitals":    {usage: "hospitals", help: "list hospitals on the server", run: c.cmdHospitals},
		"tickets":      {usage: "tickets", help: "list your tickets on the server", auth: true, run: c.cmdTickets},
		"appointments": {usage: "appointments", help: "list your appointments on the server", auth: true, run: c.cmdAppointments},
		"book":         {usage: "book <hospital-id> <YYYY-MM-DD>", help: "create a ticket on the server", auth: true, run: c.cmdBook},
		"unbook":       {usage: "unbook <ticket-id>", help: "delete a ticket on the server", auth: true, run: c.cmdUnbook},
	}
}

func (c *Console) cmdHelp(context.Context, []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := c.commands[name]
		fmt.Fprintf(c.out, "  %-38s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

func (c *Console) cmdQuit(context.Context, []string) error {
	c.quit = true
	return nil
}

func (c *Console) cmdShops(ctx context.Context, _ []string) error {
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	c.render.shops(p.Shops())
	return nil
}

func (c *Console) cmdSelect(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	shop, err := p.SelectShop(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Selected %s.\n", shop.Name)
	return nil
}

func (c *Console) cmdDate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	p.SelectDate(args[0])
	fmt.Fprintf(c.out, "Date set to %s.\n", reservation.FormatDate(args[0]))
	return nil
}

func (c *Console) cmdForm(ctx context.Context, _ []string) error {
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	shop, date := p.Selection()
	shopName, dateText := "(none)", "(none)"
	if !shop.IsZero() {
		shopName = shop.Name
	}
	if date != "" {
		dateText = reservation.FormatDate(date)
	}
	if r, editing := p.Editing(); editing {
		fmt.Fprintf(c.out, "Editing %s.\n", r.ID)
	}
	fmt.Fprintf(c.out, "  Shop:  %s\n  Date:  %s\n", shopName, dateText)
	return nil
}

func (c *Console) cmdReserve(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
	case 2:
		if err := c.cmdSelect(ctx, args[:1]); err != nil {
			return err
		}
		if err := c.cmdDate(ctx, args[1:]); err != nil {
			return err
		}
	default:
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	if _, editing := p.Editing(); editing {
		fmt.Fprintln(c.out, `An edit is in progress. Use "save" or "abort" first.`)
		return nil
	}
	r, err := p.Submit()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Reservation created successfully! (%s at %s on %s)\n", r.ID, r.Shop.Name, reservation.FormatDate(r.Date))
	return nil
}

func (c *Console) cmdList(ctx context.Context, _ []string) error {
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	held, limit := p.Usage()
	c.render.reservations(p.Reservations(), held, limit)
	return nil
}

func (c *Console) cmdView(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	r, err := p.View(args[0])
	if err != nil {
		return err
	}
	c.render.detail(r)
	return nil
}

func (c *Console) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	r, err := p.BeginEdit(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Editing %s: %s on %s. Change it with \"select\" and \"date\", then \"save\".\n",
		r.ID, r.Shop.Name, reservation.FormatDate(r.Date))
	return nil
}

func (c *Console) cmdSave(ctx context.Context, _ []string) error {
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	if _, err := p.SubmitEdit(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Reservation updated successfully.")
	return nil
}

func (c *Console) cmdAbort(ctx context.Context, _ []string) error {
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	p.CancelEdit()
	fmt.Fprintln(c.out, "Edit discarded.")
	return nil
}

func (c *Console) cmdCancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := c.loadPlanner(ctx)
	if err != nil {
		return err
	}
	if _, err := p.View(args[0]); err != nil {
		return err
	}
	if !c.confirm("Are you sure you want to cancel this reservation?") {
		fmt.Fprintln(c.out, "Kept the reservation.")
		return nil
	}
	if err := p.Cancel(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Reservation cancelled.")
	return nil
}

func (c *Console) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	if c.session == nil {
		return errNoAccount
	}
	if err := c.session.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Welcome, %s.\n", c.session.User())
	return nil
}

func (c *Console) cmdRegister(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	if c.session == nil {
		return errNoAccount
	}
	name := strings.Join(args[:len(args)-2], " ")
	email, password := args[len(args)-2], args[len(args)-1]
	if err := c.session.Register(ctx, name, email, password); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created. Welcome, %s.\n", c.session.User())
	return nil
}

func (c *Console) cmdLogout(ctx context.Context, _ []string) error {
	if c.session == nil {
		return errNoAccount
	}
	if err := c.session.Logout(ctx); err != nil {
		return err
	}
	c.store.Clear()
	if c.planner != nil {
		c.planner.CancelEdit()
	}
	fmt.Fprintln(c.out, "Logged out.")
	return nil
}

func (c *Console) cmdWhoami(context.Context, []string) error {
	if c.session == nil || !c.session.Authenticated() {
		fmt.Fprintln(c.out, "Not logged in.")
		return nil
	}
	fmt.Fprintln(c.out, c.session.User())
	return nil
}

// remote returns the session token for an API call.
func (c *Console) remote() (string, error) {
	if c.api == nil {
		return "", errOffline
	}
	return c.session.Require()
}

func (c *Console) cmdHospitals(ctx context.Context, _ []string) error {
	if c.api == nil {
		return errOffline
	}
	hs, err := c.api.ListHospitals(ctx)
	if err != nil {
		return err
	}
	shops := make([]catalog.Shop, 0, len(hs))
	for _, h := range hs {
		shops = append(shops, catalog.FromHospital(h))
	}
	c.render.shops(shops)
	return nil
}

func (c *Console) cmdTickets(ctx context.Context, _ []string) error {
	token, err := c.remote()
	if err != nil {
		return err
	}
	ts, err := c.api.ListTickets(ctx, token)
	if err != nil {
		return err
	}
	c.render.tickets(ts)
	return nil
}

func (c *Console) cmdAppointments(ctx context.Context, _ []string) error {
	token, err := c.remote()
	if err != nil {
		return err
	}
	as, err := c.api.ListAppointments(ctx, token)
	if err != nil {
		return err
	}
	c.render.tickets(as)
	return nil
}

func (c *Console) cmdBook(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errUsage
	}
	token, err := c.remote()
	if err != nil {
		return err
	}
	t, err := c.api.CreateTicket(ctx, id, entities.TicketRequest{Date: args[1]}, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Ticket %s created at %s for %s (%s).\n", t.ID, t.Hospital.Name, reservation.FormatDate(t.Date), c.render.status(t.Status))
	return nil
}

func (c *Console) cmdUnbook(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	token, err := c.remote()
	if err != nil {
		return err
	}
	if !c.confirm("Are you sure you want to delete this ticket?") {
		fmt.Fprintln(c.out, "Kept the ticket.")
		return nil
	}
	msg, err := c.api.DeleteTicket(ctx, args[0], token)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg.Message)
	return nil
}
