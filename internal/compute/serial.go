package compute

import "context"

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

func (s *SerialBackend) Name() string    { return "serial" }
func (s *SerialBackend) Available() bool { return true }
func (s *SerialBackend) Cleanup()        {}

func (s *SerialBackend) Rows(ctx context.Context, n int, fn func(row int)) error {
	return serialRows(ctx, n, fn)
}

func serialRows(ctx context.Context, n int, fn func(row int)) error {
	for row := 0; row < n; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(row)
	}
	return nil
}
