// Package pipeline sequences one full reconciliation run: concurrent
// ingestion of the four input tables, reference indexing, per-row rule
// resolution and enrichment, purchase-date reconciliation and order
// aggregation. Each run builds its own indexes from scratch; nothing
// is shared across runs.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/salesrecon/internal/aggregate"
	"github.com/andresuchdata/salesrecon/internal/enrich"
	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/reconcile"
	"github.com/andresuchdata/salesrecon/internal/refdata"
)

// Orchestrator coordinates one stateless batch run over the four
// input tables.
type Orchestrator struct {
	progress ProgressFunc
}

// NewOrchestrator creates a new Orchestrator. progress may be nil.
func NewOrchestrator(progress ProgressFunc) *Orchestrator {
	return &Orchestrator{progress: progress}
}

func (o *Orchestrator) report(stage string, percent int) {
	if o.progress != nil {
		o.progress(stage, percent)
	}
}

// Run executes the full pipeline. Ingestion of the four tables happens
// concurrently; every later stage is sequential because each depends
// on full completion of its predecessor. A structural ingestion
// failure aborts the run with one error naming the offending table;
// no partial result is produced.
func (o *Orchestrator) Run(ctx context.Context, in Inputs) (*Result, error) {
	o.report("Lendo arquivos de entrada", 10)

	var salesRows, clientRows, productRows, historyRows []ingest.RawRow

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		salesRows, err = readTable(in.Sales)
		return err
	})
	g.Go(func() (err error) {
		clientRows, err = readTable(in.Clients)
		return err
	})
	g.Go(func() (err error) {
		productRows, err = readTable(in.Products)
		return err
	})
	g.Go(func() (err error) {
		historyRows, err = readTable(in.History)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.report("Indexando produtos", 30)
	packs := refdata.BuildPackIndex(productRows)

	o.report("Indexando clientes", 50)
	// Routing overrides come from the sales table itself and must be
	// complete before any client record is constructed.
	overrides := refdata.BuildRoutingOverrides(salesRows)
	clients := refdata.BuildClientIndex(clientRows, overrides)

	o.report("Cruzando dados", 70)
	current := enrich.EnrichAll(salesRows, clients, packs)
	history := enrich.EnrichAll(historyRows, clients, packs)

	o.report("Atualizando última compra", 80)
	reconcile.UpdateLastPurchase(current, clients)

	o.report("Agrupando pedidos", 90)
	orders := aggregate.Orders(current)

	clientList := make([]refdata.ClientRecord, 0, len(clients))
	for _, c := range clients {
		clientList = append(clientList, *c)
	}
	// Map iteration order is random; emit clients sorted by code so
	// identical inputs yield identical output.
	sort.Slice(clientList, func(i, j int) bool { return clientList[i].Code < clientList[j].Code })

	o.report("Concluído", 100)

	return &Result{
		Current: current,
		History: history,
		Orders:  orders,
		Clients: clientList,
	}, nil
}

func readTable(t Table) ([]ingest.RawRow, error) {
	if t.Reader == nil {
		return nil, fmt.Errorf("missing input table %q", t.Label)
	}
	rows, err := ingest.ReadTable(t.Reader, t.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to process table %q: %w", t.Label, err)
	}
	return rows, nil
}
