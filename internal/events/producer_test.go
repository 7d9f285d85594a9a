package events

import (
	"context"
	"io"
	"testing"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKafkaProducerRequiresBrokers(t *testing.T) {
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)

	_, err := NewKafkaProducer(nil, log)
	require.Error(t, err)
}

func TestNoOpProducerIsSilent(t *testing.T) {
	p := NoOpProducer{}

	err := p.PublishCustomerEvent(context.Background(), TopicCustomerCreated, domain.NewCustomer("Tony", "Stark"))
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
