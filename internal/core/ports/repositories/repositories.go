package repositories

// RepositoryProvider is the output of the storage factory. Both stores always share one driver
// selection, but the catalog may stay in memory while loans persist.
type RepositoryProvider struct {
	LoanRepo    LoanRepositoryFacade
	CatalogRepo CatalogRepositoryFacade
}
