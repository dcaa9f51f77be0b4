package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const EventOrderPlaced = "order.placed"

type publishAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// 注文イベントをSNSトピックに流す
type SNSPublisher struct {
	client   publishAPI
	topicARN string
}

// NewSNSClient はAWSの設定を読んでSNSクライアントを作る
func NewSNSClient(ctx context.Context, endpoint string) (*sns.Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return sns.NewFromConfig(cfg, func(o *sns.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// DI
func NewSNSPublisher(client publishAPI, topicARN string) *SNSPublisher {
	return &SNSPublisher{client: client, topicARN: topicARN}
}

type orderPlacedEvent struct {
	EventType    string `json:"event_type"`
	OrderID      string `json:"order_id"`
	UserID       string `json:"user_id,omitempty"`
	ItemCount    int    `json:"item_count"`
	TotalCents   int64  `json:"total_cents"`
	PaymentProof string `json:"payment_proof"`
	CreatedAt    string `json:"created_at"`
}

// OrderPlaced はチェックアウト完了を通知する
func (p *SNSPublisher) OrderPlaced(ctx context.Context, order model.Order) error {
	msg, err := json.Marshal(orderPlacedEvent{
		EventType:    EventOrderPlaced,
		OrderID:      order.ID,
		UserID:       order.UserID,
		ItemCount:    order.ItemCount,
		TotalCents:   order.TotalCents,
		PaymentProof: order.Proof.Key,
		CreatedAt:    order.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(msg)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventOrderPlaced),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}
