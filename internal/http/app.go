package httpapi

import (
	"log/slog"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/service"
)

type App struct {
	Todos    *service.Todos
	Profiles *service.Profiles
	Log      *slog.Logger
}
