// internal/common/database/firestore.go
package database

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"enrollment-workers/internal/common/config"
	"enrollment-workers/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const envFirestoreEmulatorHost = "FIRESTORE_EMULATOR_HOST"

// NewFirestore creates a Firestore client. When an emulator host is
// configured (or exported), the client talks plaintext gRPC without
// credentials.
func NewFirestore(ctx context.Context, cfg config.FirestoreConfig) (*firestore.Client, error) {
	projectID := strings.TrimSpace(cfg.ProjectID)
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project id is required")
	}

	host := strings.TrimSpace(cfg.EmulatorHost)
	if host == "" {
		host = os.Getenv(envFirestoreEmulatorHost)
	}

	var opts []option.ClientOption
	if host != "" {
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithEndpoint(host),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := firestore.NewClient(dialCtx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	return client, nil
}

// ChatLogStore appends per-turn chat analytics to a Firestore collection.
type ChatLogStore struct {
	client     *firestore.Client
	collection string
}

func NewChatLogStore(client *firestore.Client, collection string) *ChatLogStore {
	return &ChatLogStore{client: client, collection: collection}
}

// Append writes entry with a server timestamp and returns the document id.
func (s *ChatLogStore) Append(ctx context.Context, entry models.ChatLog) (string, error) {
	ref, _, err := s.client.Collection(s.collection).Add(ctx, map[string]interface{}{
		"userId":            entry.UserID,
		"sessionId":         entry.SessionID,
		"currentStep":       entry.CurrentStep,
		"userMessage":       entry.UserMessage,
		"userIntent":        entry.UserIntent,
		"userSentiment":     entry.UserSentiment,
		"userEmotion":       entry.UserEmotion,
		"botResponse":       entry.BotResponse,
		"frustrationLevel":  entry.FrustrationLevel,
		"urgencyScore":      entry.UrgencyScore,
		"satisfactionScore": entry.SatisfactionScore,
		"responseTime":      entry.ResponseTimeMs,
		"timestamp":         firestore.ServerTimestamp,
	})
	if err != nil {
		return "", fmt.Errorf("append chat log: %w", err)
	}
	return ref.ID, nil
}

// Get reads one chat log back by document id.
func (s *ChatLogStore) Get(ctx context.Context, id string) (models.ChatLog, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		return models.ChatLog{}, fmt.Errorf("get chat log %s: %w", id, err)
	}
	var entry models.ChatLog
	if err := snap.DataTo(&entry); err != nil {
		return models.ChatLog{}, fmt.Errorf("decode chat log %s: %w", id, err)
	}
	return entry, nil
}
