package repository

import (
	"context"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const depositsQuoteIDIndex = "quote_id-index"

type depositItem struct {
	ID          string `dynamodbav:"id"`
	QuoteID     string `dynamodbav:"quote_id"`
	ProviderID  string `dynamodbav:"provider_id"`
	RedirectURL string `dynamodbav:"redirect_url"`
	Amount      int64  `dynamodbav:"amount"`
	Status      string `dynamodbav:"status"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// DepositDynamoRepository persists the deposit checkouts opened after signing.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
type DepositDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IDepositRepository = (*DepositDynamoRepository)(nil)

func NewDepositDynamoRepository(ddb DynamoAPI, tableName string) *DepositDynamoRepository {
	return &DepositDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *DepositDynamoRepository) Create(ctx context.Context, d entities.DepositCheckout) (entities.DepositCheckout, error) {
	av, err := attributevalue.MarshalMap(depositItem{
		ID:          d.ID,
		QuoteID:     d.QuoteID,
		ProviderID:  d.ProviderID,
		RedirectURL: d.RedirectURL,
		Amount:      d.Amount,
		Status:      string(d.Status),
		CreatedAt:   formatTime(d.CreatedAt),
	})
	if err != nil {
		return entities.DepositCheckout{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.DepositCheckout{}, err
	}
	return d, nil
}

func (r *DepositDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositCheckout, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(depositsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})

	var res []entities.DepositCheckout
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it depositItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			res = append(res, entities.DepositCheckout{
				ID:          it.ID,
				QuoteID:     it.QuoteID,
				ProviderID:  it.ProviderID,
				RedirectURL: it.RedirectURL,
				Amount:      it.Amount,
				Status:      entities.DepositStatus(it.Status),
				CreatedAt:   parseTime(it.CreatedAt),
			})
		}
	}
	return res, nil
}
