package service

import (
	"errors"
	"fmt"
)

// BackendKind: семейство драйверов хранилища, от которого зависит вид ссылок
type BackendKind int

const (
	BackendLocal BackendKind = iota + 1
	BackendObjectStore
)

// Поддерживаемые значения Storage.Driver
const (
	DriverLocal  = "local"
	DriverS3     = "s3"
	DriverSpaces = "spaces"
)

// ErrUnknownDriver: драйвер не задан или не распознан. Ошибка фатальна при старте.
var ErrUnknownDriver = errors.New("unknown storage driver")

// ResolveBackend определяет семейство драйвера по значению из конфигурации.
// Значения сравниваются точно, без значения по умолчанию.
func ResolveBackend(driver string) (BackendKind, error) {
	switch driver {
	case DriverLocal:
		return BackendLocal, nil
	case DriverS3, DriverSpaces:
		return BackendObjectStore, nil
	case "":
		return 0, fmt.Errorf("%w: driver is not set", ErrUnknownDriver)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func (k BackendKind) String() string {
	switch k {
	case BackendLocal:
		return "local"
	case BackendObjectStore:
		return "object_store"
	default:
		return fmt.Sprintf("BackendKind(%d)", int(k))
	}
}
