package sql

import "time"

// Predicate is a pushable filter condition handed to a connector's
// read_dataset, restricted to the six comparisons and four types a
// connector is allowed to accept as pushdown.
type Predicate struct {
	ColumnIdentity string
	Column         string
	Op             ComparisonOp
	Value          interface{}
}

// ReadOptions is the argument bundle of the Connector contract's
// read_dataset(columns?, predicates?, just_schema?).
type ReadOptions struct {
	Columns     []string // nil means "all columns"
	Predicates  []Predicate
	JustSchema  bool
	StartDate   *time.Time
	EndDate     *time.Time
}

// Connector is the abstract contract every data source implements.
// Concrete backends (disk, object store, SQL, specific file formats) are
// out of scope here; only this contract and the capability markers below
// are defined.
type Connector interface {
	// GetDatasetSchema returns the relation's schema.
	GetDatasetSchema() (*RelationSchema, error)
	// ReadDataset streams morsels, optionally pushing down column
	// projection and/or predicates. just_schema requests schema-only.
	ReadDataset(ctx *Context, opts ReadOptions) (MorselIterator, error)
}

// BlobConnector is the optional blob-access extension of the Connector
// contract: read_blob / get_list_of_blob_names.
type BlobConnector interface {
	ReadBlob(ctx *Context, blobName string) ([]byte, error)
	ListBlobNames(ctx *Context, prefix string) ([]string, error)
}

// Partitionable is a capability marker: the connector accepts a
// (start_date, end_date, partition scheme) and prunes partitions outside
// that range.
type Partitionable interface {
	SupportsPartitioning() bool
	PartitionScheme() string
}

// Cacheable is a capability marker: the connector's blob reader should be
// wrapped with the read-through cache unless NO_CACHE is hinted.
type Cacheable interface {
	SupportsCaching() bool
}

// PredicatePushable is a capability marker: the connector declares which
// comparison operators and column types it can accept as pushed-down
// predicates.
type PredicatePushable interface {
	PushableOps() []ComparisonOp
	PushableTypes() []Type
}

// CanPushPredicate reports whether a connector advertising
// PredicatePushable accepts predicate p.
func CanPushPredicate(pp PredicatePushable, p Predicate, colType Type) bool {
	if !p.Op.Pushable() {
		return false
	}
	opOK := false
	for _, op := range pp.PushableOps() {
		if op == p.Op {
			opOK = true
			break
		}
	}
	if !opOK {
		return false
	}
	for _, t := range pp.PushableTypes() {
		if t == colType {
			return true
		}
	}
	return false
}

// Catalog supplies dataset schemas, function signatures and connectors by
// relation name — the leaf collaborator of pipeline.
type Catalog interface {
	// Relation returns the connector backing relation; its schema comes
	// from the connector's GetDatasetSchema.
	Relation(name string) (Connector, error)
	// HasRelation reports whether name is a known relation, without
	// requiring a successful connector lookup.
	HasRelation(name string) bool
	// ScalarFunction and AggregateFunction look up a function signature by
	// name, case-insensitively, from separate scalar and aggregate namespaces.
	ScalarFunction(name string) (FunctionSignature, bool)
	AggregateFunction(name string) (FunctionSignature, bool)
	// FunctionNames lists every known scalar and aggregate function name,
	// for fuzzy-suggestion purposes.
	FunctionNames() []string
	// RelationNames lists every known relation name.
	RelationNames() []string
}
