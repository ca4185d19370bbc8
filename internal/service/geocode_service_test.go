package service

import (
	"context"
	"testing"
	"time"

	"github.com/kkpworldkk-arch/furugi-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockGeocoder is a mock implementation of the Geocoder interface
type MockGeocoder struct {
	mock.Mock
}

// Geocode implements Geocoder.
func (m *MockGeocoder) Geocode(ctx context.Context, req models.GeocodeRequest) (*models.Coordinates, error) {
	args := m.Called(ctx, req)
	coords, _ := args.Get(0).(*models.Coordinates)
	return coords, args.Error(1)
}

func query(q string) interface{} {
	return mock.MatchedBy(func(req models.GeocodeRequest) bool { return req.Query == q })
}

func TestSimplifyAddress(t *testing.T) {
	tests := []struct {
		address  string
		expected string
	}{
		{"東京都北区十条仲原1-2-5 赤のれんビル2F", "東京都北区十条仲原1-2-5"},
		{"東京都杉並区高円寺北2-6-4　2階", "東京都杉並区高円寺北2-6-4"},
		{"大阪府大阪市西区南堀江1-9-1スタービル", "大阪府大阪市西区南堀江1-9-1スター"},
		{"東京都渋谷区神宮前4-26-26（表参道）", "東京都渋谷区神宮前4-26-26"},
		{"東京都渋谷区神宮前4-26-26(表参道)", "東京都渋谷区神宮前4-26-26"},
		{"北海道札幌市中央区南2条西4-9-2 3F", "北海道札幌市中央区南2条西4-9-2"},
		{"福岡県福岡市中央区大名2-1-4 101号", "福岡県福岡市中央区大名2-1-4"},
		{"沖縄県那覇市赤嶺2-1-7🏢", "沖縄県那覇市赤嶺2-1-7"},
		{"埼玉県さいたま市北区日進町3-372", "埼玉県さいたま市北区日進町3-372"},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.expected, SimplifyAddress(tt.address))
		})
	}
}

func TestCandidates(t *testing.T) {
	assert.Equal(t,
		[]string{"東京都北区十条仲原1-2-5 赤のれんビル2F", "東京都北区十条仲原1-2-5"},
		Candidates("東京都北区十条仲原1-2-5 赤のれんビル2F"),
	)
	assert.Equal(t,
		[]string{"埼玉県川口市芝中田1-1-14"},
		Candidates("埼玉県川口市芝中田1-1-14"),
	)
	// An address that starts with a delimiter has no usable simplified form.
	assert.Equal(t, []string{" 2F"}, Candidates(" 2F"))
}

func TestGeocodeResolver_Resolve(t *testing.T) {
	const full = "東京都北区十条仲原1-2-5 赤のれんビル2F"
	const simple = "東京都北区十条仲原1-2-5"
	jujo := &models.Coordinates{Latitude: 35.7616538, Longitude: 139.7214768}

	tests := []struct {
		name            string
		address         string
		setup           func(m *MockGeocoder)
		expected        models.Coordinates
		expectedQueries []string
	}{
		{
			name:     "empty address skips the geocoder",
			address:  "   ",
			setup:    func(m *MockGeocoder) {},
			expected: models.FallbackCoordinates(),
		},
		{
			name:    "full address matches first",
			address: full,
			setup: func(m *MockGeocoder) {
				m.On("Geocode", mock.Anything, query(full+", Japan")).Return(jujo, nil).Once()
			},
			expected:        *jujo,
			expectedQueries: []string{full + ", Japan"},
		},
		{
			name:    "simplified address used after a miss",
			address: full,
			setup: func(m *MockGeocoder) {
				m.On("Geocode", mock.Anything, query(full+", Japan")).Return(nil, nil).Once()
				m.On("Geocode", mock.Anything, query(simple+", Japan")).Return(jujo, nil).Once()
			},
			expected:        *jujo,
			expectedQueries: []string{full + ", Japan", simple + ", Japan"},
		},
		{
			name:    "transport error on first candidate continues",
			address: full,
			setup: func(m *MockGeocoder) {
				m.On("Geocode", mock.Anything, query(full+", Japan")).Return(nil, assert.AnError).Once()
				m.On("Geocode", mock.Anything, query(simple+", Japan")).Return(jujo, nil).Once()
			},
			expected:        *jujo,
			expectedQueries: []string{full + ", Japan", simple + ", Japan"},
		},
		{
			name:    "all candidates fail",
			address: full,
			setup: func(m *MockGeocoder) {
				m.On("Geocode", mock.Anything, query(full+", Japan")).Return(nil, assert.AnError).Once()
				m.On("Geocode", mock.Anything, query(simple+", Japan")).Return(nil, nil).Once()
			},
			expected:        models.FallbackCoordinates(),
			expectedQueries: []string{full + ", Japan", simple + ", Japan"},
		},
		{
			name:    "single candidate miss",
			address: "埼玉県川口市芝中田1-1-14",
			setup: func(m *MockGeocoder) {
				m.On("Geocode", mock.Anything, query("埼玉県川口市芝中田1-1-14, Japan")).Return(nil, nil).Once()
			},
			expected:        models.FallbackCoordinates(),
			expectedQueries: []string{"埼玉県川口市芝中田1-1-14, Japan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockGeocoder := new(MockGeocoder)
			tt.setup(mockGeocoder)
			resolver := NewGeocodeResolver(mockGeocoder)

			// Execute
			result := resolver.Resolve(context.Background(), tt.address)

			// Assert
			assert.Equal(t, tt.expected, result)

			var queries []string
			for _, call := range mockGeocoder.Calls {
				queries = append(queries, call.Arguments.Get(1).(models.GeocodeRequest).Query)
			}
			assert.Equal(t, tt.expectedQueries, queries)
			mockGeocoder.AssertExpectations(t)
		})
	}
}

func TestGeocodeResolver_RequestOptions(t *testing.T) {
	mockGeocoder := new(MockGeocoder)
	mockGeocoder.On("Geocode", mock.Anything, mock.Anything).Return(nil, nil)

	resolver := NewGeocodeResolver(mockGeocoder,
		WithUserAgent("furugi_test"),
		WithCountryHint("jp"),
		WithLookupTimeout(3*time.Second),
	)

	resolver.Resolve(context.Background(), "東京都世田谷区北沢2-25-12")
	resolver.Resolve(context.Background(), "東京都世田谷区北沢2-25-12")

	calls := mockGeocoder.Calls
	assert.Len(t, calls, 2)

	first := calls[0].Arguments.Get(1).(models.GeocodeRequest)
	second := calls[1].Arguments.Get(1).(models.GeocodeRequest)

	assert.Equal(t, "jp", first.CountryHint)
	assert.Equal(t, 3*time.Second, first.Timeout)
	assert.Contains(t, first.UserAgent, "furugi_test_")
	assert.NotEqual(t, first.UserAgent, second.UserAgent, "each resolution must use its own client token")

	ctx := calls[0].Arguments.Get(0).(context.Context)
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline, "lookups must be bounded by a timeout")
}

func TestGeocodeResolver_SharesTokenAcrossCandidates(t *testing.T) {
	mockGeocoder := new(MockGeocoder)
	mockGeocoder.On("Geocode", mock.Anything, mock.Anything).Return(nil, nil)

	NewGeocodeResolver(mockGeocoder).Resolve(context.Background(), "東京都北区十条仲原1-2-5 赤のれんビル2F")

	calls := mockGeocoder.Calls
	assert.Len(t, calls, 2)
	assert.Equal(t,
		calls[0].Arguments.Get(1).(models.GeocodeRequest).UserAgent,
		calls[1].Arguments.Get(1).(models.GeocodeRequest).UserAgent,
	)
}
