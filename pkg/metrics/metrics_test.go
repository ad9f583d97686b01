package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordEntityChange(t *testing.T) {
	before := testutil.ToFloat64(EntityChangesTotal.WithLabelValues("produit", "created"))

	RecordEntityChange("produit", "created")
	RecordEntityChange("produit", "created")

	assert.Equal(t, before+2, testutil.ToFloat64(EntityChangesTotal.WithLabelValues("produit", "created")))
}

func TestRecordPublishFailure(t *testing.T) {
	before := testutil.ToFloat64(EventPublishFailures.WithLabelValues("avis"))

	RecordPublishFailure("avis")

	assert.Equal(t, before+1, testutil.ToFloat64(EventPublishFailures.WithLabelValues("avis")))
}
