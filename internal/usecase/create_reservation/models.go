package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64          // ID оператора, создающего бронирование
	AssetID      int64          // ID судна
	StartDate    types.Date     // Первая дата (порядок с EndDate не важен)
	EndDate      types.Date     // Последняя дата включительно
	Part         domain.DayPart // Запрошенная часть дня, HALF допустим
	CustomerName string         // Имя клиента
	Notes        *string        // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID           int64
	AssetID      int64
	StartDate    types.Date
	EndDate      types.Date
	Part         domain.DayPart // Фактически сохранённая часть дня (HALF раскрывается в AM или PM)
	Status       string
	CustomerName string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
