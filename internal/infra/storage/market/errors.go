package market

import "errors"

var (
	// ErrMarketNotFound возвращается, когда маркет не найден
	ErrMarketNotFound = errors.New("market.repository: market not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("market.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("market.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("market.repository: failed to scan row")
)
