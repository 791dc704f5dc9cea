package cmd

import (
	"time"

	"lever/core"
	accountservice "lever/service/account"
	engineservice "lever/service/engine"
	oracleservice "lever/service/oracle"
	reserveservice "lever/service/reserve"
	"lever/store/borrow"
	"lever/store/event"
	"lever/store/reserve"
	"lever/store/supply"
	"lever/store/transaction"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

// ---------------store-----------------------------------------

func provideReserveStore(db *db.DB) core.IReserveStore {
	return reserve.New(db)
}

// the query path tolerates slightly stale reserves; writers keep using
// the raw store so the version guard always sees the latest row
func provideCachedReserveStore(db *db.DB) core.IReserveStore {
	return reserve.Cache(reserve.New(db), 3*time.Second)
}

func provideSupplyStore(db *db.DB) core.ISupplyStore {
	return supply.New(db)
}

func provideBorrowStore(db *db.DB) core.IBorrowStore {
	return borrow.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

// ------------------service------------------------------------

func providePriceService() core.IPriceOracleService {
	return oracleservice.New(cfg.Oracle)
}

func provideReserveService() core.IReserveService {
	return reserveservice.New()
}

func provideAccountService(supplyStore core.ISupplyStore, borrowStore core.IBorrowStore) core.IAccountService {
	return accountservice.New(supplyStore, borrowStore, providePriceService())
}

func provideEngine(database *db.DB) core.IEngine {
	supplyStore := provideSupplyStore(database)
	borrowStore := provideBorrowStore(database)

	return engineservice.New(
		database,
		cfg.Risk,
		cfg.Notifier,
		provideReserveStore(database),
		supplyStore,
		borrowStore,
		provideTransactionStore(database),
		provideEventStore(database),
		provideReserveService(),
		provideAccountService(supplyStore, borrowStore),
	)
}
