package port

import "context"

//go:generate mockgen -source=desktop.go -destination=mocks/mock_desktop.go -package=mock_port

// URLOpener opens a link target outside the desk, usually with the desktop
// environment's default handler.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}
