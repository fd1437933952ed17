package models

import (
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
)

func TestPost_GetCookedTimeInLocation(t *testing.T) {
	type fields struct {
		CookedAt   int64
		TimeOffset *int
		GpsLat     *float64
		GpsLong    *float64
	}
	CST, _ := time.LoadLocation("Asia/Shanghai")
	tests := []struct {
		name   string
		fields fields
		want   time.Time
	}{
		{
			name: "Asia/Shanghai", // CST
			fields: fields{
				CookedAt: 1696258800,
				GpsLat:   aws.Float64(39.9254474),
				GpsLong:  aws.Float64(116.3870752),
			},
			want: time.Unix(1696258800, 0).Local().In(CST),
		},
		{
			name: "Local", // when no GPS coords
			fields: fields{
				CookedAt: 1696258800,
			},
			want: time.Unix(1696258800, 0),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{
				CookedAt:   tt.fields.CookedAt,
				TimeOffset: tt.fields.TimeOffset,
				GpsLat:     tt.fields.GpsLat,
				GpsLong:    tt.fields.GpsLong,
			}
			if got := p.GetCookedTimeInLocation(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Post.GetCookedTimeInLocation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPost_LocalDate(t *testing.T) {
	offset := 9 * 3600 // UTC+9
	tests := []struct {
		name string
		post Post
		want string
	}{
		{
			name: "offset preferred over GPS",
			post: Post{
				CookedAt:   1696258800, // 2023-10-02 15:00:00 UTC
				TimeOffset: &offset,
				GpsLat:     aws.Float64(39.9254474),
				GpsLong:    aws.Float64(116.3870752),
			},
			want: "2023-10-03",
		},
		{
			name: "GPS fallback",
			post: Post{
				CookedAt: 1696258800,
				GpsLat:   aws.Float64(39.9254474), // Beijing, UTC+8
				GpsLong:  aws.Float64(116.3870752),
			},
			want: "2023-10-02",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.post.LocalDate(); got != tt.want {
				t.Errorf("Post.LocalDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPost_GetRoughLocation(t *testing.T) {
	p := Post{
		GpsLat:  aws.Float64(42.123456),
		GpsLong: aws.Float64(-8.987654),
	}
	loc := p.GetRoughLocation()
	if loc.GpsLat != 42.1234 || loc.GpsLong != -8.9876 {
		t.Errorf("GetRoughLocation() = %v,%v", loc.GpsLat, loc.GpsLong)
	}
}
