package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioBooking/pkg/dbmetrics"
)

const (
	// DefaultAttempts количество попыток сериализуемой транзакции
	DefaultAttempts = 3
	// DefaultBackoff базовая пауза между попытками (растет линейно)
	DefaultBackoff = 20 * time.Millisecond
)

var (
	// ErrTransactionAborted возвращается, когда транзакцию не удалось зафиксировать за все попытки
	ErrTransactionAborted = errors.New("txmanager: transaction aborted")

	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithRetry задает количество попыток и базовую паузу для DoSerializable
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(m *TransactionManager) {
		if attempts > 0 {
			m.attempts = attempts
		}
		if backoff >= 0 {
			m.backoff = backoff
		}
	}
}

// WithOnRetry задает хук, вызываемый перед каждой повторной попыткой
func WithOnRetry(fn func()) Option {
	return func(m *TransactionManager) {
		m.onRetry = fn
	}
}

// TransactionManager управляет транзакциями через контекст:
// fn получает контекст с транзакцией, а репозитории достают её через dbmetrics.GetExecutor
type TransactionManager struct {
	db       TxBeginner
	attempts int
	backoff  time.Duration
	onRetry  func()
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:       db,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции REPEATABLE READ
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
// При конфликте сериализации или дедлоке вся fn повторяется целиком (до attempts раз).
// Если все попытки исчерпаны, возвращается ErrTransactionAborted.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= m.attempts; attempt++ {
		err := m.run(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == m.attempts {
			break
		}
		if m.onRetry != nil {
			m.onRetry()
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrTransactionAborted, ctx.Err())
		case <-time.After(time.Duration(attempt) * m.backoff):
		}
	}

	return fmt.Errorf("%w: after %d attempts: %w", ErrTransactionAborted, m.attempts, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommit, err)
	}

	return nil
}

// IsRetryable возвращает true для ошибок, после которых транзакцию имеет смысл повторить:
// serialization_failure (40001) и deadlock_detected (40P01)
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
