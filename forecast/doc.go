// Package forecast produces out-of-sample forecasts from state-space fits.
//
// Forecasting is encoded as missing data: Extend appends h trailing missing
// placeholders to the response series, and the same inference call then
// jointly produces the in-sample fit and the forecast, because the latent
// recursion propagates forward with no observation term constraining the
// padded positions.
//
//	padded, _ := forecast.Extend(y, 6)
//	spec, _ := model.New(model.RandomWalk, padded.Len(), 1)
//	fit, _ := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(padded),
//		[]string{"x"}, mcmc.DefaultConfig())
//	band, _ := forecast.FittedBand(fit, "x", 0.95)
//	for i := 0; i < band.Len(); i++ {
//	    fmt.Printf("%s: %.2f [%.2f, %.2f]\n",
//	        band.Names[i], band.Mean[i], band.Lower[i], band.Upper[i])
//	}
//
// With h = 0 the padded series is unchanged and the fit reproduces the
// in-sample posterior exactly.
package forecast
