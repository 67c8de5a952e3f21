// Command seatwatch follows the live seat map of a running server and can
// place a single booking.
//
//	seatwatch -addr http://localhost:8080
//	seatwatch -addr http://localhost:8080 -book 12 -user alice -strategy REDIS
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/srgjo27/seat_reservation/internal/adapter/subscriber"
	"github.com/srgjo27/seat_reservation/internal/core/domain"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	book := flag.Int64("book", 0, "seat id to book, then exit")
	user := flag.String("user", "", "user id for -book")
	strategy := flag.String("strategy", "", "lock strategy for -book (REDIS, DATABASE, LOCAL)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := subscriber.NewClient(*addr)

	if *book > 0 {
		os.Exit(runBook(ctx, client, *book, *user, *strategy))
	}

	view := subscriber.NewSeatView()
	err := client.Watch(ctx, view, subscriber.DefaultReconnectDelay, subscriber.WatchHandlers{
		Seeded: func(seats []domain.SeatEvent) {
			printGrid(os.Stdout, seats)
			fmt.Fprintf(os.Stdout, "%s  watching %d seats\n", time.Now().Format(time.TimeOnly), len(seats))
		},
		Changed: func(ev domain.SeatEvent) {
			printGrid(os.Stdout, view.Seats())
			fmt.Fprintf(os.Stdout, "%s  %s\n", time.Now().Format(time.TimeOnly), describe(ev))
		},
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBook(ctx context.Context, client *subscriber.Client, seatID int64, user, strategy string) int {
	if strings.TrimSpace(user) == "" {
		fmt.Fprintln(os.Stderr, "-user is required with -book")
		return 2
	}

	seat, err := client.Book(ctx, seatID, user, strategy)
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		var bookingErr *subscriber.BookingError
		if errors.As(err, &bookingErr) && bookingErr.Retryable {
			return 75
		}
		return 1
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "booked %s (seat %d, version %d)\n", seat.SeatNumber, seat.SeatID, seat.Version)
	return 0
}

func printGrid(w io.Writer, seats []domain.SeatEvent) {
	free := color.New(color.FgGreen)
	taken := color.New(color.FgRed, color.Bold)

	fmt.Fprint(w, "\033[H\033[2J")

	row := ""
	for _, seat := range seats {
		r, _, _ := strings.Cut(seat.SeatNumber, "-")
		if r != row {
			if row != "" {
				fmt.Fprintln(w)
			}
			row = r
			fmt.Fprintf(w, "%3s ", r)
		}

		if seat.Booked {
			taken.Fprint(w, "[X]")
		} else {
			free.Fprint(w, "[ ]")
		}
	}
	fmt.Fprintln(w)
}

func describe(ev domain.SeatEvent) string {
	if !ev.Booked {
		return fmt.Sprintf("%s released (v%d)", ev.SeatNumber, ev.Version)
	}

	by := "someone"
	if ev.BookedBy != nil {
		by = *ev.BookedBy
	}
	return fmt.Sprintf("%s booked by %s (v%d)", ev.SeatNumber, by, ev.Version)
}
