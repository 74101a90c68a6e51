package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"reservequeue/internal/catalog"
	"reservequeue/internal/entities"
	"reservequeue/internal/reservation"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiOrange = "\033[38;5;208m"
	ansiRed    = "\033[31m"
)

func statusColor(status string) string {
	switch strings.ToLower(status) {
	case "confirmed":
		return ansiGreen
	case "pending":
		return ansiOrange
	case "cancelled", "canceled":
		return ansiRed
	}
	return ""
}

type renderer struct {
	out   io.Writer
	color bool
}

func (r renderer) status(s string) string {
	c := statusColor(s)
	if !r.color || c == "" {
		return s
	}
	return c + s + ansiReset
}

func (r renderer) shops(shops []catalog.Shop) {
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tPHONE\tHOURS")
	for _, s := range shops {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Address, s.Telephone, s.Hours)
	}
	tw.Flush()
}

func (r renderer) reservations(rs []reservation.Reservation, held, limit int) {
	fmt.Fprintf(r.out, "You have %d of %d reservations.\n", held, limit)
	if len(rs) == 0 {
		fmt.Fprintln(r.out, "You don't have any reservations yet.")
		return
	}
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSHOP\tDATE\tSTATUS")
	for _, res := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.ID, res.Shop.Name, reservation.FormatDate(res.Date), r.status(string(res.Status)))
	}
	tw.Flush()
}

func (r renderer) detail(res reservation.Reservation) {
	fmt.Fprintf(r.out, "Reservation %s\n", res.ID)
	fmt.Fprintf(r.out, "  Shop:    %s\n", res.Shop.Name)
	fmt.Fprintf(r.out, "  Address: %s\n", res.Shop.Address)
	fmt.Fprintf(r.out, "  Phone:   %s\n", res.Shop.Telephone)
	fmt.Fprintf(r.out, "  Hours:   %s\n", res.Shop.Hours)
	fmt.Fprintf(r.out, "  Date:    %s\n", reservation.FormatDate(res.Date))
	fmt.Fprintf(r.out, "  Status:  %s\n", r.status(string(res.Status)))
}

func (r renderer) tickets(ts []entities.Ticket) {
	if len(ts) == 0 {
		fmt.Fprintln(r.out, "No tickets on the server.")
		return
	}
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHOSPITAL\tDATE\tSTATUS")
	for _, t := range ts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Hospital.Name, reservation.FormatDate(t.Date), r.status(t.Status))
	}
	tw.Flush()
}
