package port

import (
	"context"
	"errors"
)

//go:generate mockgen -source=printer.go -destination=mocks/mock_printer.go -package=mock_port

// ErrPrintBlocked is returned when the host refuses to open a print target.
var ErrPrintBlocked = errors.New("print target blocked by host")

// PrintJob is a titled plain-text document handed to a Printer.
type PrintJob struct {
	Title string
	Body  string
}

// Printer exports a document outside the desk (file, spooler, pop-up).
type Printer interface {
	// Print exports job and returns a human-readable location of the result.
	Print(ctx context.Context, job PrintJob) (string, error)
}
