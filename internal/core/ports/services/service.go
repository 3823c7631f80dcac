package services

// ServiceContainer is what the HTTP layer gets handed: lending plus its catalog collaborator.
type ServiceContainer struct {
	Lending LendingSvcFacade
	Catalog CatalogSvcFacade
}
