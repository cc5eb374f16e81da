package completion

import (
	"context"
	"time"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CompleteElapsed переводит активные бронирования с истекшим слотом в completed
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновый воркер, периодически переводящий активные бронирования
// с истекшим временем слота в статус completed
type Worker struct {
	bookingRepo BookingRepository
	interval    time.Duration
	logger      Logger
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewWorker создает новый экземпляр воркера завершения бронирований
func NewWorker(bookingRepo BookingRepository, interval time.Duration, logger Logger) *Worker {
	return &Worker{
		bookingRepo: bookingRepo,
		interval:    interval,
		logger:      logger,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start запускает воркер в отдельной горутине
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop останавливает воркер и дожидается завершения текущей итерации
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.logger.Info("completion worker: started with interval %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)
		case <-w.stopCh:
			w.logger.Info("completion worker: stopped")
			return
		case <-ctx.Done():
			w.logger.Info("completion worker: context cancelled")
			return
		}
	}
}

// sweep выполняет одну итерацию: завершает бронирования с истекшим слотом
func (w *Worker) sweep(ctx context.Context) {
	completed, err := w.bookingRepo.CompleteElapsed(ctx, time.Now())
	if err != nil {
		w.logger.Error("completion worker: sweep failed: %v", err)
		return
	}

	if completed > 0 {
		w.logger.Info("completion worker: completed %d elapsed bookings", completed)
	}
}
