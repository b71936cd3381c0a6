package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/bikeshare-dashboard-go/internal/domain/entity"
	"github.com/diillson/bikeshare-dashboard-go/internal/shared/types"
)

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// S3Source lê as viagens de objetos CSV num bucket S3.
// Os clientes são criados na primeira chamada e reaproveitados.
type S3Source struct {
	profile string
	region  string
	columns map[string]Columns

	mu        sync.Mutex
	s3Client  s3API
	stsClient stsAPI
	accountID string
}

// NewS3Source cria uma nova fonte S3. Profile e região vazios usam a cadeia padrão do SDK.
func NewS3Source(profile, region string, columns map[string]Columns) *S3Source {
	return &S3Source{profile: profile, region: region, columns: columns}
}

func (s *S3Source) clients(ctx context.Context) (s3API, stsAPI, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.s3Client != nil {
		return s.s3Client, s.stsClient, nil
	}

	var opts []func(*config.LoadOptions) error
	if s.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.profile))
	}
	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config for profile %s: %w", s.profile, err)
	}

	s.s3Client = s3.NewFromConfig(cfg)
	s.stsClient = sts.NewFromConfig(cfg)
	return s.s3Client, s.stsClient, nil
}

// Load baixa o objeto da cidade e faz o parse do CSV.
func (s *S3Source) Load(ctx context.Context, city entity.City) ([]entity.TripRecord, error) {
	bucket, key := city.Source.Bucket, city.Source.Key
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: %s: bucket and key are required for S3 sources", types.ErrSourceUnavailable, city.Name)
	}

	client, _, err := s.clients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrSourceUnavailable, city.Name, err)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: s3://%s/%s: %v", types.ErrSourceUnavailable, city.Name, bucket, key, err)
	}
	defer out.Body.Close()

	records, err := readCSV(ctx, out.Body, columnsFor(s.columns, city))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: s3://%s/%s: %v", types.ErrSourceUnavailable, city.Name, bucket, key, err)
	}
	return records, nil
}

// Describe retorna a URI do objeto e a conta AWS usada para lê-lo.
func (s *S3Source) Describe(ctx context.Context, city entity.City) (string, error) {
	uri := fmt.Sprintf("s3://%s/%s", city.Source.Bucket, city.Source.Key)

	account, err := s.account(ctx)
	if err != nil {
		return uri, err
	}
	return fmt.Sprintf("%s (account %s)", uri, account), nil
}

func (s *S3Source) account(ctx context.Context) (string, error) {
	_, stsClient, err := s.clients(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	cached := s.accountID
	s.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}

	s.mu.Lock()
	s.accountID = aws.ToString(result.Account)
	s.mu.Unlock()
	return aws.ToString(result.Account), nil
}
