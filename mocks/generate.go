package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider Provider
