// Package budget holds the shared vocabulary of budget execution: the moments
// ("momentos contables") of expense and revenue, their canonical order, and
// the per-moment amounts recorded against a budget line or revenue concept.
//
// The moment order is configuration, not code. A Catalog is built once (from
// the built-in defaults or a YAML file) and injected into both the validation
// engine and anything that labels moments for users, so the two cannot drift.
//
//	catalog, err := budget.LoadCatalog("config/catalog.yaml")
//	if err != nil {
//		return err
//	}
//	seq := catalog.Expense()
//	fmt.Println(seq.Label(budget.Committed)) // Comprometido
package budget
