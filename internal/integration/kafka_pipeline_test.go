//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/couchcryptid/tempdrop-etl/internal/adapter/kafka"
	"github.com/couchcryptid/tempdrop-etl/internal/config"
	"github.com/couchcryptid/tempdrop-etl/internal/decoder"
	"github.com/couchcryptid/tempdrop-etl/internal/domain"
	"github.com/couchcryptid/tempdrop-etl/internal/observability"
	"github.com/couchcryptid/tempdrop-etl/internal/pipeline"
	"github.com/couchcryptid/tempdrop-etl/internal/schema"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testSinkTopic = "test-profiles"

const testMessage = `URNT11 KNHC 181200
XXAA 68121 99217 70721 06213
61616 AF309 0918A CYCLONE OB 06
REL 2134N07212W 181205 SPG 2130N07215W 181210
`

// testDecodeScript emits a fixed decoded level set regardless of input, so
// the pipeline under test is deterministic without the real decoder binary.
const testDecodeScript = `#!/bin/sh
cat >> "$2" <<'EOF'
1 240918. 1200 21.340 72.120 1070.0 -9999.0 -9999.0 1008.0 -9999.0 -9999.0 SFC
1 240918. 1200 21.340 72.120 850.0 18.2 75.0 1543.0 -3.0 10.0 MANL
1 240918. 1200 21.340 72.120 700.0 10.1 62.0 3121.0 -5.0 12.0 MANL
EOF
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("tempdrop-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesToKafka runs the full pipeline against a real broker:
// a message file is processed through the scripted decoder, the HSA file is
// written, and the profile event lands on the sink topic.
func TestPipelinePublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	dir := t.TempDir()
	msgPath := filepath.Join(dir, "202409181200.KNHC")
	require.NoError(t, os.WriteFile(msgPath, []byte(testMessage), 0o644))

	scriptPath := filepath.Join(dir, "decode.sh")
	require.NoError(t, os.WriteFile(scriptPath, []byte(testDecodeScript), 0o755))

	sch, err := schema.Load("../../configs/hsa_schema.yaml")
	require.NoError(t, err)

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	dec := decoder.NewExecDecoder(scriptPath, []int{2}, 30*time.Second, -9999.0, discardLogger())
	proc := pipeline.New(dec, sch, writer, nil, pipeline.Options{
		CorrectDrift:     true,
		CorrectTime:      true,
		SurfacePressure:  1070.0,
		MissingValue:     -9999.0,
		ValidLevelFlags:  []string{"MANL", "SIGL"},
		HeadingOffsetDeg: 90,
		EastNegative:     true,
	}, discardLogger(), observability.NewMetricsForTesting())

	s, err := proc.Process(ctx, msgPath)
	require.NoError(t, err)
	assert.FileExists(t, s.OutputPath)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-sink-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()
	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	var event domain.ProfileEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))

	assert.Equal(t, string(msg.Key), event.ID)
	assert.Equal(t, "202409181200.KNHC", event.Source)
	assert.True(t, event.DriftCorrected)
	assert.Equal(t, 1008.0, event.SurfacePres)
	assert.Len(t, event.Levels, 2)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "202409181200.KNHC", headers["source"])
	_, err = time.Parse(time.RFC3339, headers["processed_at"])
	assert.NoError(t, err, "processed_at should be valid RFC3339")
}
