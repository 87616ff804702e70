package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"agency_quotes/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func sampleQuote() entities.Quote {
	amount := int64(149050)
	return entities.Quote{
		ID:        "q-1",
		ProjectID: "p-1",
		Number:    42,
		PDFURL:    "https://cdn.example.test/quotes/000042/devis-000042-1.pdf",
		Client:    entities.ClientParty{Name: "Camille Martin", Email: "camille@example.fr"},
		Amount:    &amount,
		Services:  []string{"Site vitrine", "SEO"},
		Delay:     "6 semaines",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestQuoteItemRoundTrip(t *testing.T) {
	q := sampleQuote()
	back := fromQuoteItem(toQuoteItem(q))
	assert.Equal(t, q, back)

	q.Amount = nil
	q.Signature = &entities.QuoteSignature{PDFURL: "https://cdn.example.test/signed.pdf", SignedAt: created.Add(time.Hour)}
	it := toQuoteItem(q)
	assert.Equal(t, "signed", it.Status)
	back = fromQuoteItem(it)
	require.NotNil(t, back.Signature)
	assert.Equal(t, q.Signature.PDFURL, back.Signature.PDFURL)
	assert.True(t, back.Signature.SignedAt.Equal(q.Signature.SignedAt))
	assert.Nil(t, back.Amount)
}

func TestQuoteRepository_CreateIsConditional(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	_, err := repo.Create(context.Background(), sampleQuote())
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "quotes", aws.ToString(in.TableName))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(in.ConditionExpression))
	assert.Equal(t, &types.AttributeValueMemberN{Value: "149050"}, in.Item["amount"])
	assert.NotContains(t, in.Item, "signed_pdf_url")
}

func TestQuoteRepository_GetByIDMissing(t *testing.T) {
	repo := NewQuoteDynamoRepository(&fakeDynamo{}, "quotes")
	q, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, q.ID)
}

func TestQuoteRepository_GetByProjectIDPrefersSigned(t *testing.T) {
	pending := sampleQuote()
	signed := sampleQuote()
	signed.ID = "q-2"
	signed.CreatedAt = created.Add(time.Minute)
	signed.Signature = &entities.QuoteSignature{PDFURL: "u", SignedAt: created.Add(time.Hour)}

	fake := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		a, _ := attributevalue.MarshalMap(toQuoteItem(pending))
		b, _ := attributevalue.MarshalMap(toQuoteItem(signed))
		return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{a, b}}, nil
	}}
	repo := NewQuoteDynamoRepository(fake, "quotes")

	got, err := repo.GetByProjectID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "q-2", got.ID)
	assert.Equal(t, quotesProjectIDIndex, aws.ToString(fake.queries[0].IndexName))
}

func TestQuoteRepository_MarkSigned(t *testing.T) {
	signedAt := created.Add(2 * time.Hour)

	t.Run("transition applied", func(t *testing.T) {
		fake := &fakeDynamo{update: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			q := sampleQuote()
			q.Signature = &entities.QuoteSignature{PDFURL: "signed.pdf", SignedAt: signedAt}
			av, _ := attributevalue.MarshalMap(toQuoteItem(q))
			return &dynamodb.UpdateItemOutput{Attributes: av}, nil
		}}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		got, err := repo.MarkSigned(context.Background(), "q-1", "signed.pdf", signedAt)
		require.NoError(t, err)
		require.NotNil(t, got.Signature)
		assert.Equal(t, "signed.pdf", got.Signature.PDFURL)

		in := fake.updates[0]
		assert.Contains(t, aws.ToString(in.ConditionExpression), "#status = :pending")
		assert.Equal(t, &types.AttributeValueMemberS{Value: "pending"}, in.ExpressionAttributeValues[":pending"])
		assert.Equal(t, types.ReturnValueAllNew, in.ReturnValues)
	})

	t.Run("already signed", func(t *testing.T) {
		fake := &fakeDynamo{update: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		got, err := repo.MarkSigned(context.Background(), "q-1", "signed.pdf", signedAt)
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("throttled")
		fake := &fakeDynamo{update: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) { return nil, boom }}
		repo := NewQuoteDynamoRepository(fake, "quotes")

		_, err := repo.MarkSigned(context.Background(), "q-1", "signed.pdf", signedAt)
		assert.ErrorIs(t, err, boom)
	})
}

func TestQuoteRepository_Delete(t *testing.T) {
	fake := &fakeDynamo{}
	repo := NewQuoteDynamoRepository(fake, "quotes")
	ok, err := repo.Delete(context.Background(), "q-1")
	require.NoError(t, err)
	assert.True(t, ok)

	fake.deleteErr = &types.ConditionalCheckFailedException{}
	ok, err = repo.Delete(context.Background(), "q-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQuoteNumberSequence_Next(t *testing.T) {
	fake := &fakeDynamo{update: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
			"value": &types.AttributeValueMemberN{Value: "43"},
		}}, nil
	}}
	seq := NewQuoteNumberSequence(fake, "counters")

	n, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 43, n)
	in := fake.updates[0]
	assert.Equal(t, "ADD #value :one", aws.ToString(in.UpdateExpression))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "quote_number"}, in.Key["name"])

	fake.update = func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	_, err = seq.Next(context.Background())
	assert.Error(t, err)
}
