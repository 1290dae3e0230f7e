package corrector

import (
	"time"

	"github.com/viant/entity-corrector/errors"
	"github.com/viant/entity-corrector/index"
	"github.com/viant/entity-corrector/index/linear"
	"github.com/viant/entity-corrector/index/vptree"
	"github.com/viant/entity-corrector/internal/logger"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/vector"
	"github.com/viant/entity-corrector/vocab"
)

const (
	// BroadRadius is the vector-space radius of the first correction phase.
	BroadRadius = 2
	// CorrectionRadius is the raw-string distance accepted by Correct.
	CorrectionRadius = 1
	// DefaultRadius is the radius callers use when they have no preference.
	DefaultRadius = 3
	// DefaultK is the neighbour count callers use when they have no preference.
	DefaultK = 5
)

// Match is a kNN result.
type Match struct {
	Distance float64
	Entity   string
}

// Corrector matches queries against a fixed corpus. It is immutable after
// New and safe for concurrent use.
type Corrector struct {
	entities []string
	vocab    *vocab.Vocabulary
	encoder  *vector.Encoder
	linear   *linear.Index
	tree     *vptree.Index
	search   index.Index
	// broad serves the first Correct phase; it always measures encoded edit
	// distance, whatever metric search uses.
	broad    index.Index
	config   Config
}

// New builds a corrector over entities. It fails with a ValidationError when
// entities is empty or the configuration is invalid.
func New(entities []string, opts ...Option) (*Corrector, error) {
	o := &options{config: *DefaultConfig(), logger: logger.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	if len(entities) == 0 {
		return nil, errors.NewValidation("entities", "corpus is empty")
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	lowered := make([]string, len(entities))
	for i, e := range entities {
		lowered[i] = vocab.Normalize(e)
	}
	v := vocab.Build(lowered)
	enc, err := vector.NewEncoder(v, o.config.MaxSize)
	if err != nil {
		return nil, err
	}
	vecs := enc.EncodeAll(lowered)
	distance := o.config.Metric.Function()

	c := &Corrector{
		entities: lowered,
		vocab:    v,
		encoder:  enc,
		config:   o.config,
	}
	if c.linear, err = linear.New(vecs, distance); err != nil {
		return nil, errors.Wrap(err, "corrector: build linear index")
	}
	c.search = c.linear
	if o.config.UseIndex {
		if c.tree, err = vptree.New(vecs, distance); err != nil {
			return nil, errors.Wrap(err, "corrector: build metric tree")
		}
		c.search = c.tree
	}
	c.broad = c.search
	if o.config.Metric != metric.NameDamerau && o.config.Metric != "" {
		if c.broad, err = linear.New(vecs, metric.Vectors); err != nil {
			return nil, errors.Wrap(err, "corrector: build correction scan")
		}
	}
	o.logger.Debugw("built corrector",
		logger.FieldEntities, len(lowered),
		logger.FieldVocabulary, v.Size(),
		logger.FieldMaxSize, o.config.MaxSize,
		logger.FieldMode, string(o.config.Mode()),
		logger.FieldMetric, string(o.config.Metric),
		logger.FieldDurationMS, time.Since(started).Milliseconds(),
	)
	return c, nil
}

// NearestWithinLinear scans every entity and returns those whose encoded
// distance to query is <= radius, in corpus order. It works in both modes.
func (c *Corrector) NearestWithinLinear(query string, radius int) []string {
	return c.collect(c.linear.Within(c.encoder.Encode(query), float64(radius)))
}

// WithinRadius returns the entities whose encoded distance to query is <=
// radius using the metric tree. Order is unspecified.
func (c *Corrector) WithinRadius(query string, radius int) ([]string, error) {
	if err := c.requireTree("WithinRadius"); err != nil {
		return nil, err
	}
	return c.collect(c.tree.Within(c.encoder.Encode(query), float64(radius))), nil
}

// KNearest returns the min(k, Len()) entities closest to query in vector
// space, ascending by distance with ties in corpus order.
func (c *Corrector) KNearest(query string, k int) ([]Match, error) {
	if err := c.requireTree("KNearest"); err != nil {
		return nil, err
	}
	neighbors := c.tree.Nearest(c.encoder.Encode(query), k)
	out := make([]Match, len(neighbors))
	for i, n := range neighbors {
		out[i] = Match{Distance: n.Distance, Entity: c.entities[n.Index]}
	}
	return out, nil
}

// Correct returns the entities within CorrectionRadius raw edit distance of
// query. Candidates come from a BroadRadius encoded edit distance search, on
// the strategy selected at construction when the metric is damerau and on a
// linear scan otherwise.
func (c *Corrector) Correct(query string) ([]string, error) {
	if c.broad == nil {
		return nil, errors.NewConfiguration("Correct", "no search strategy built", "construct with corrector.New")
	}
	q := vocab.Normalize(query)
	candidates := c.broad.Within(c.encoder.Encode(q), BroadRadius)
	var out []string
	seen := make(map[string]struct{}, len(candidates))
	for _, idx := range candidates {
		entity := c.entities[idx]
		if _, ok := seen[entity]; ok {
			continue
		}
		seen[entity] = struct{}{}
		if metric.Strings(q, entity) <= CorrectionRadius {
			out = append(out, entity)
		}
	}
	return out, nil
}

// Entities returns the normalized corpus in construction order.
func (c *Corrector) Entities() []string { return append([]string(nil), c.entities...) }

// Len returns the corpus size.
func (c *Corrector) Len() int { return len(c.entities) }

// Mode returns the construction-time search mode.
func (c *Corrector) Mode() Mode { return c.config.Mode() }

// Config returns a copy of the construction settings.
func (c *Corrector) Config() Config { return c.config }

// Encoder returns the encoder shared by the corpus and queries.
func (c *Corrector) Encoder() *vector.Encoder { return c.encoder }

// Vocabulary returns the corpus vocabulary.
func (c *Corrector) Vocabulary() *vocab.Vocabulary { return c.vocab }

func (c *Corrector) requireTree(op string) error {
	if c.tree == nil {
		return errors.NewConfiguration(op, "metric tree not built for a linear corrector",
			"construct with corrector.WithIndex(true)")
	}
	return nil
}

// collect maps positions to entities, dropping repeated strings.
func (c *Corrector) collect(idxs []int) []string {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]string, 0, len(idxs))
	seen := make(map[string]struct{}, len(idxs))
	for _, idx := range idxs {
		entity := c.entities[idx]
		if _, ok := seen[entity]; ok {
			continue
		}
		seen[entity] = struct{}{}
		out = append(out, entity)
	}
	return out
}
