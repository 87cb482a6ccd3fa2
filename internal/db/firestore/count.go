package firestore

import (
	"fmt"

	fs "cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// countFromAggregation extracts the integer result of a WithCount("all") query.
func countFromAggregation(result fs.AggregationResult) (int64, error) {
	raw, ok := result["all"]
	if !ok {
		return 0, fmt.Errorf("aggregation result missing count alias")
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation value type %T", raw)
	}
	return value.GetIntegerValue(), nil
}
