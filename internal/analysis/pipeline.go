package analysis

import (
	"sync"

	"github.com/procurelens/ProcureLens/internal/analysis/lens"
)

// runHeuristic fires all five lens analyzers concurrently over the same input
// and assembles the aggregate once every lens has finished. The analyzers are
// pure functions writing to distinct result fields, so the only
// synchronization needed is the join.
func runHeuristic(req Request) *Result {
	res := &Result{
		ContractID:   req.ContractID,
		ContractName: req.ContractName,
		DocumentType: req.DocumentType,
	}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		res.Legal = lens.AnalyzeLegal(req.Content, req.DocumentType)
	}()
	go func() {
		defer wg.Done()
		res.Financial = lens.AnalyzeFinancial(req.Content, req.DocumentType)
	}()
	go func() {
		defer wg.Done()
		res.Operational = lens.AnalyzeOperational(req.Content, req.DocumentType)
	}()
	go func() {
		defer wg.Done()
		res.Vendor = lens.AnalyzeVendor(req.Content, req.DocumentType, req.VendorID)
	}()
	go func() {
		defer wg.Done()
		res.Compliance = lens.AnalyzeCompliance(req.Content, req.DocumentType)
	}()
	wg.Wait()

	res.OverallRisk = overallLevel(res)
	res.TopRecommendations = synthesizeRecommendations(res)
	res.QuickActions = generateQuickActions(res)
	return res
}
