package notifier

import (
	"context"
	"fmt"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
)

const tweetLimit = 280

// statusUpdater is the part of the Twitter client used for posting
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, error)
}

type statusService struct {
	client *twitter.Client
}

func (s statusService) Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, error) {
	tweet, _, err := s.client.Statuses.Update(status, params)
	return tweet, err
}

// Twitter posts notifications as tweets
type Twitter struct {
	statuses statusUpdater
}

// NewTwitter creates a Twitter notifier from OAuth1 credentials
func NewTwitter(apiKey, apiSecret, accessToken, accessSecret string) (*Twitter, error) {
	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	cfg := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := cfg.Client(oauth1.NoContext, token)

	return &Twitter{statuses: statusService{client: twitter.NewClient(httpClient)}}, nil
}

// Notify posts msg as a single tweet
func (n *Twitter) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.statuses.Update(formatTweet(msg), nil); err != nil {
		return fmt.Errorf("posting tweet: %w", err)
	}
	return nil
}

// formatTweet renders msg within Twitter's character limit
func formatTweet(msg Message) string {
	tweet := "🎮 " + msg.Title
	if msg.Body != "" {
		tweet += "\n\n" + msg.Body
	}
	tweet += "\n\n#TEKKEN8"

	if r := []rune(tweet); len(r) > tweetLimit {
		tweet = string(r[:tweetLimit-3]) + "..."
	}
	return tweet
}
