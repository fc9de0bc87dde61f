package servicetest

import (
	"context"
	"strings"
	"testing"

	stockService "stockledger.GO/service/stock"
)

func TestImportItems_HappyPath(t *testing.T) {
	db := engineDB(t)
	engine := newEngine(t, db)

	csv := "code,name,balance\n" +
		"IMP-1,Imported one,10\n" +
		"IMP-2,Imported two,0\n"
	res, err := stockService.ImportItems(context.Background(), engine, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 imported 0 skipped", res)
	}

	item, err := engine.Items().FindByCode("IMP-1")
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if item.Balance != 10 {
		t.Errorf("balance = %d, want 10", item.Balance)
	}

	// Initial stock goes through Apply, so it leaves a ledger entry.
	history, _ := engine.Ledger().ListForItem(item.ItemID)
	if len(history) != 1 {
		t.Errorf("len(history) = %d, want 1", len(history))
	}

	empty, _ := engine.Items().FindByCode("IMP-2")
	emptyHistory, _ := engine.Ledger().ListForItem(empty.ItemID)
	if len(emptyHistory) != 0 {
		t.Errorf("zero-balance import wrote %d ledger rows, want 0", len(emptyHistory))
	}
}

func TestImportItems_SkipsBadRows(t *testing.T) {
	db := engineDB(t)
	engine := newEngine(t, db)

	csv := "code,name,balance\n" +
		"GOOD-1,Good,5\n" +
		",No code,1\n" +
		"BAD-BAL,Bad balance,notanumber\n" +
		"NEG-1,Negative,-3\n" +
		"GOOD-2,Also good,\n"
	res, err := stockService.ImportItems(context.Background(), engine, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("Imported = %d, want 2", res.Imported)
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
	if len(res.Warnings) != 3 {
		t.Errorf("len(Warnings) = %d, want 3: %v", len(res.Warnings), res.Warnings)
	}
}

func TestImportItems_DuplicateCodeSkipped(t *testing.T) {
	db := engineDB(t)
	engine := newEngine(t, db)

	engine.CreateItem(context.Background(), "TAKEN-1", "Already here", 0)

	csv := "code,name\n" +
		"TAKEN-1,Clashes\n" +
		"FRESH-1,Fine\n"
	res, err := stockService.ImportItems(context.Background(), engine, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportItems: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 1 imported 1 skipped", res)
	}
}

func TestImportItems_MissingColumn(t *testing.T) {
	db := engineDB(t)
	engine := newEngine(t, db)

	if _, err := stockService.ImportItems(context.Background(), engine, strings.NewReader("code,balance\nX,1\n")); err == nil {
		t.Error("missing name column accepted, want error")
	}
	if _, err := stockService.ImportItems(context.Background(), engine, strings.NewReader("sku,name\nX,Y\n")); err == nil {
		t.Error("missing code column accepted, want error")
	}
}
