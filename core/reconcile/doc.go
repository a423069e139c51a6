// Package reconcile pushes product records into the knowledge graph.
//
// A run is driven by an Orchestrator built with New. Construction optionally
// preloads the entity reuse cache, so a run never starts writing with a cold
// cache it could not fill.
//
// # Full sync
//
// Sync fetches every trade code in the graph once, then walks the records in
// fixed-size batches:
//
//  1. build a product per record (failures are counted and skipped)
//  2. split the batch into creates and updates against the snapshot (Plan)
//  3. validate both sides and drop what fails, then split the survivors again
//  4. send the creates in one batch call and the updates in another
//
// A failed batch call counts every product it carried as an error. Nothing is
// retried.
//
// # Incremental sync
//
// Incremental fetches each product, compares the patchable fields (Diff) and
// sends one patch per changed product. Products missing from the graph are
// errors, not creates.
//
// # Dry runs
//
// With Options.DryRun both modes stop short of writing; products that would
// have been sent are counted as skipped.
package reconcile
