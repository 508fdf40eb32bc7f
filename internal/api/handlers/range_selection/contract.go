package range_selection

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/selection"
)

type SessionStore interface {
	Create(pool domain.AssetPool) *selection.Session
	Get(id string) (*selection.Session, error)
	Delete(id string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
