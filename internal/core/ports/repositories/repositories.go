package repositories

// RepositoryProvider bundles the persistence-side dependencies handed to the
// service container.
type RepositoryProvider struct {
	Transaction TransactionRepository
	Reference   ReferenceRepository
}
