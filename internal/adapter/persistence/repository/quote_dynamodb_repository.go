package repository

import (
	"context"
	"time"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const quotesProjectIDIndex = "project_id-index"

type quoteItem struct {
	ID            string   `dynamodbav:"id"`
	ProjectID     string   `dynamodbav:"project_id"`
	Number        int64    `dynamodbav:"number"`
	Status        string   `dynamodbav:"status"`
	PDFURL        string   `dynamodbav:"pdf_url"`
	SignedPDFURL  string   `dynamodbav:"signed_pdf_url,omitempty"`
	SignedAt      string   `dynamodbav:"signed_at,omitempty"`
	ClientName    string   `dynamodbav:"client_name"`
	ClientEmail   string   `dynamodbav:"client_email"`
	ClientPhone   string   `dynamodbav:"client_phone,omitempty"`
	ClientCompany string   `dynamodbav:"client_company,omitempty"`
	Amount        *int64   `dynamodbav:"amount,omitempty"`
	Services      []string `dynamodbav:"services,omitempty"`
	Delay         string   `dynamodbav:"delay,omitempty"`
	CreatedAt     string   `dynamodbav:"created_at"`
	UpdatedAt     string   `dynamodbav:"updated_at"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: project_id-index (PK: project_id)
//
// status is stored redundantly with the signature fields so the signing
// transition can be guarded by a condition expression.
type QuoteDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI, tableName string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
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
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

// GetByProjectID returns the project's quote. Should several rows exist, a
// signed one wins, then the oldest.
func (r *QuoteDynamoRepository) GetByProjectID(ctx context.Context, projectID string) (entities.Quote, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesProjectIDIndex),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: projectID},
		},
	})
	if err != nil {
		return entities.Quote{}, err
	}

	var best entities.Quote
	for _, raw := range out.Items {
		var it quoteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.Quote{}, err
		}
		q := fromQuoteItem(it)
		switch {
		case best.ID == "":
			best = q
		case !q.IsPending() && best.IsPending():
			best = q
		case q.IsPending() == best.IsPending() && q.CreatedAt.Before(best.CreatedAt):
			best = q
		}
	}
	return best, nil
}

// MarkSigned applies pending -> signed. A zero Quote means the row is gone or
// no longer pending.
func (r *QuoteDynamoRepository) MarkSigned(ctx context.Context, id string, signedPDFURL string, signedAt time.Time) (entities.Quote, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :signed, #signed_pdf_url = :url, #signed_at = :signed_at, #updated_at = :signed_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":   &types.AttributeValueMemberS{Value: string(entities.QuoteStatusPending)},
			":signed":    &types.AttributeValueMemberS{Value: string(entities.QuoteStatusSigned)},
			":url":       &types.AttributeValueMemberS{Value: signedPDFURL},
			":signed_at": &types.AttributeValueMemberS{Value: formatTime(signedAt)},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#status":         "status",
			"#signed_pdf_url": "signed_pdf_url",
			"#signed_at":      "signed_at",
			"#updated_at":     "updated_at",
		}, map[string]string{"#id": "id"}),
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it), nil
}

func (r *QuoteDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 stringKey("id", id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:            q.ID,
		ProjectID:     q.ProjectID,
		Number:        q.Number,
		Status:        string(q.Status()),
		PDFURL:        q.PDFURL,
		ClientName:    q.Client.Name,
		ClientEmail:   q.Client.Email,
		ClientPhone:   q.Client.Phone,
		ClientCompany: q.Client.Company,
		Amount:        q.Amount,
		Services:      q.Services,
		Delay:         q.Delay,
		CreatedAt:     formatTime(q.CreatedAt),
		UpdatedAt:     formatTime(q.UpdatedAt),
	}
	if q.Signature != nil {
		it.SignedPDFURL = q.Signature.PDFURL
		it.SignedAt = formatTime(q.Signature.SignedAt)
	}
	return it
}

func fromQuoteItem(it quoteItem) entities.Quote {
	q := entities.Quote{
		ID:        it.ID,
		ProjectID: it.ProjectID,
		Number:    it.Number,
		PDFURL:    it.PDFURL,
		Client: entities.ClientParty{
			Name:    it.ClientName,
			Email:   it.ClientEmail,
			Phone:   it.ClientPhone,
			Company: it.ClientCompany,
		},
		Amount:    it.Amount,
		Services:  it.Services,
		Delay:     it.Delay,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
	if it.Status == string(entities.QuoteStatusSigned) {
		q.Signature = &entities.QuoteSignature{PDFURL: it.SignedPDFURL, SignedAt: parseTime(it.SignedAt)}
	}
	return q
}
