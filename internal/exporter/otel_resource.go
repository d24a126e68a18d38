package exporter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instanceIDKey = "service.instance.id"

// createOTELResource creates an OTEL resource from configuration attributes.
// A random service.instance.id is added unless one is configured.
func createOTELResource(resourceAttrs map[string]string) (*resource.Resource, error) {
	attrs := make([]attribute.KeyValue, 0, len(resourceAttrs)+1)
	for k, v := range resourceAttrs {
		attrs = append(attrs, attribute.String(k, v))
	}
	if _, ok := resourceAttrs[instanceIDKey]; !ok {
		attrs = append(attrs, attribute.String(instanceIDKey, uuid.NewString()))
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}
