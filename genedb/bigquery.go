package genedb

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"

	"github.com/carbocation/regulonmap/idmap"
)

// BigQuery is a lookup authority over a mapping table in BigQuery, for
// reference databases too large to ship locally. Table is addressed as
// dataset.table within the client's project and carries the same columns as
// the SQLite gene_id_map schema.
type BigQuery struct {
	Context context.Context
	Client  *bigquery.Client
	Table   string
}

// NewBigQuery connects a client for the given project.
func NewBigQuery(ctx context.Context, project, table string) (*BigQuery, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to BigQuery: %v", idmap.ErrLookupUnavailable, err)
	}

	return &BigQuery{Context: ctx, Client: client, Table: table}, nil
}

// Close releases the BigQuery client.
func (b *BigQuery) Close() error {
	return b.Client.Close()
}

// MapIDs translates ids positionally. The ORDER BY pins the first-match
// tie-break so that reruns against the same table are stable.
func (b *BigQuery) MapIDs(ctx context.Context, ids []string, from, to string) ([]string, error) {
	out := make([]string, len(ids))
	for i := range out {
		out[i] = idmap.Unmapped
	}
	if len(ids) == 0 {
		return out, nil
	}

	query := b.Client.Query(fmt.Sprintf(`SELECT source_id, target_id
FROM %s
WHERE source_namespace = @source
  AND target_namespace = @target
  AND source_id IN UNNEST(@ids)
ORDER BY source_id, target_id`, b.Table))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "source", Value: from},
		{Name: "target", Value: to},
		{Name: "ids", Value: ids},
	}

	itr, err := query.Read(ctx)
	if err != nil && strings.Contains(err.Error(), "Error 404") {
		return nil, fmt.Errorf("%w: mapping table %s does not exist", idmap.ErrLookupUnavailable, b.Table)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", idmap.ErrLookupUnavailable, err)
	}

	matched := make(map[string]string)
	for {
		var values struct {
			SourceID string `bigquery:"source_id"`
			TargetID string `bigquery:"target_id"`
		}

		err := itr.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		if _, seen := matched[values.SourceID]; !seen {
			matched[values.SourceID] = values.TargetID
		}
	}

	for i, id := range ids {
		if target, ok := matched[id]; ok {
			out[i] = target
		}
	}

	return out, nil
}
