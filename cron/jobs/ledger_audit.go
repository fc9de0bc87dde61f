package jobs

import (
	"context"
	"log"
	"time"

	"stockledger.GO/config"
	"stockledger.GO/cron"
	"stockledger.GO/service/stock"
)

func init() {
	cron.Register("ledgeraudit", "0 * * * *", LedgerAuditJob)
}

// LedgerAuditJob recomputes every item balance from the mutation ledger
// and logs any drift. The engine makes drift impossible through its own
// writes; this catches out-of-band edits to the database.
func LedgerAuditJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("ledger audit: db connect failed: %v", err)
		return
	}

	engine, err := stock.GetEngine(db)
	if err != nil {
		log.Printf("ledger audit: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := engine.Audit(ctx)
	if err != nil {
		log.Printf("ledger audit: %v", err)
		return
	}
	if report.Clean() {
		log.Printf("ledger audit: %d items checked, no drift", report.Checked)
		return
	}
	for _, d := range report.Drift {
		log.Printf("ledger audit: DRIFT item=%d code=%s balance=%d ledger=%d", d.ItemID, d.Code, d.Balance, d.LedgerSum)
	}
}
