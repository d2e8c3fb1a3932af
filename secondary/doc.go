// Package secondary evaluates secondary-particle energy spectra.
//
// Each primary particle [Kind] (muon, neutral pion, charged pion) has a
// tabulated spectrum of its decay products as a function of the energy ratio
// x = E_secondary/E_primary. [Spectra] builds an interpolator over that table
// on first use, persists it through a [cache.Store], and evaluates it:
//
//	store, _ := cache.Open(dataRoot)
//	sp := secondary.New(store)
//	rows, err := sp.FromMuon([]float64{0.1, 0.5, 2}, 10)
//
// Each returned row holds the three channel densities divided by the
// corresponding E_secondary.
package secondary
