package booking

import "github.com/m04kA/PTM-BookingService/pkg/txmanager"

// DBExecutor *sql.DB или *sql.Tx (транзакция берётся из контекста через txmanager.GetExecutor)
type DBExecutor = txmanager.DBExecutor
