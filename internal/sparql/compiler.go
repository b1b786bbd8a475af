package sparql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tnishi/rdf-config/internal/config"
	"github.com/tnishi/rdf-config/internal/model"
)

// Compiler compiles the queries of one configuration directory against
// its model. It is safe for concurrent use.
type Compiler struct {
	cfg       *config.Config
	model     *model.Model
	prefixes  *config.PrefixTable
	endpoints []string
}

// NewCompiler loads the prefix table, model and endpoints of cfg and
// builds the Model. A missing endpoint.yaml leaves the endpoint header
// empty.
func NewCompiler(cfg *config.Config) (*Compiler, error) {
	prefixes, err := cfg.Prefixes()
	if err != nil {
		return nil, err
	}
	doc, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	m, err := model.Build(doc, prefixes)
	if err != nil {
		return nil, fmt.Errorf("build model: %w", err)
	}

	ep, err := cfg.Endpoint()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return &Compiler{
		cfg:       cfg,
		model:     m,
		prefixes:  prefixes,
		endpoints: ep.Endpoints,
	}, nil
}

// Model returns the compiled model.
func (c *Compiler) Model() *model.Model { return c.model }

// Query resolves the named definition; "" selects DefaultQueryName.
func (c *Compiler) Query(name string) (Query, error) {
	if name == "" {
		name = DefaultQueryName
	}
	def, err := c.cfg.Query(name)
	if err != nil {
		return Query{}, err
	}
	return QueryFromDef(name, def, c.endpoints), nil
}

// Compile returns the text of the named query.
func (c *Compiler) Compile(name string, opts ...Option) (string, error) {
	q, err := c.Query(name)
	if err != nil {
		return "", err
	}
	return c.CompileQuery(q, opts...)
}

// CompileQuery returns the text of a resolved query.
func (c *Compiler) CompileQuery(q Query, opts ...Option) (string, error) {
	where, err := NewWhereBuilder(c.model, q, opts...)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", q.Name, err)
	}

	a := NewAssembler(opts...)
	if !newOptions(opts).noComment {
		a.Add(NewCommentBuilder(q))
	}
	a.Add(NewPrefixBuilder(c.prefixes, where.Terms())).
		Add(NewSelectBuilder(q.Variables)).
		Add(where)
	return a.String(), nil
}

// Result is one compiled query.
type Result struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// CompileAll compiles every defined query in parallel and returns them
// sorted by name.
func (c *Compiler) CompileAll(ctx context.Context, opts ...Option) ([]Result, error) {
	queries, err := c.cfg.Queries()
	if err != nil {
		return nil, err
	}
	names := queries.Keys()
	sort.Strings(names)

	results := make([]Result, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			text, err := c.Compile(name, opts...)
			if err != nil {
				return err
			}
			results[i] = Result{Name: name, Query: text}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Generate compiles the named query of cfg.
func Generate(cfg *config.Config, name string, opts ...Option) (string, error) {
	c, err := NewCompiler(cfg)
	if err != nil {
		return "", err
	}
	return c.Compile(name, opts...)
}

// GenerateAll compiles every query of cfg, sorted by name.
func GenerateAll(ctx context.Context, cfg *config.Config, opts ...Option) ([]Result, error) {
	c, err := NewCompiler(cfg)
	if err != nil {
		return nil, err
	}
	return c.CompileAll(ctx, opts...)
}
