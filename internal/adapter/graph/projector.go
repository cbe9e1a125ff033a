package graph

import (
	"context"
	"fmt"

	"prizzys-backend/internal/domain/network"
)

const (
	cypherConstraint = `CREATE CONSTRAINT member_id IF NOT EXISTS FOR (m:Member) REQUIRE m.id IS UNIQUE`

	cypherMergeLink = `
MERGE (l:Member {id: $loaner_id})
MERGE (e:Member {id: $loanee_id})
MERGE (l)-[r:LENDS_TO]->(e)
ON CREATE SET r.since = $since`

	cypherCountLinks = `MATCH (:Member)-[r:LENDS_TO]->(:Member) RETURN count(r) AS links`
)

var _ network.Projector = (*Projector)(nil)

// Projector writes network edges as (:Member)-[:LENDS_TO]->(:Member).
type Projector struct {
	client Client
}

func NewProjector(c Client) *Projector { return &Projector{client: c} }

// EnsureSchema creates the uniqueness constraint the MERGEs rely on.
func (p *Projector) EnsureSchema(ctx context.Context) error {
	_, err := p.client.ExecuteWrite(ctx, cypherConstraint, nil)
	return err
}

func (p *Projector) ProjectLink(ctx context.Context, l network.Link) error {
	_, err := p.client.ExecuteWrite(ctx, cypherMergeLink, map[string]any{
		"loaner_id": l.LoanerID,
		"loanee_id": l.LoaneeID,
		"since":     l.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
	if err != nil {
		return fmt.Errorf("merge LENDS_TO %s->%s: %w", l.LoanerID, l.LoaneeID, err)
	}
	return nil
}

// CountLinks reports how many LENDS_TO edges the graph holds.
func (p *Projector) CountLinks(ctx context.Context) (int64, error) {
	res, err := p.client.ExecuteRead(ctx, cypherCountLinks, nil)
	if err != nil {
		return 0, fmt.Errorf("count LENDS_TO: %w", err)
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	n, ok := res.Records[0]["links"].(int64)
	if !ok {
		return 0, fmt.Errorf("count LENDS_TO: unexpected %T", res.Records[0]["links"])
	}
	return n, nil
}
