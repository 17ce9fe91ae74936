package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"
	"yatube/internal/utils"
)

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
	Description string  `xml:"description"`
	Author      string  `xml:"author,omitempty"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// SyndicationService 把全站流第一页输出为 RSS 2.0
type SyndicationService struct {
	feed    *FeedService
	siteURL string
	title   string
}

func NewSyndicationService(feed *FeedService, siteURL, title string) *SyndicationService {
	return &SyndicationService{feed: feed, siteURL: siteURL, title: title}
}

// RSS 生成 RSS 文档
func (s *SyndicationService) RSS(ctx context.Context) ([]byte, error) {
	page, err := s.feed.Query(ctx, GlobalFeed(), nil, 1)
	if err != nil {
		return nil, err
	}

	doc := rssDocument{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.title,
			Link:        s.siteURL + "/",
			Description: "Latest posts",
			Items:       make([]rssItem, 0, len(page.Posts)),
		},
	}
	if len(page.Posts) > 0 {
		doc.Channel.LastBuildDate = page.Posts[0].CreatedAt.UTC().Format(time.RFC1123Z)
	}

	for _, post := range page.Posts {
		link := fmt.Sprintf("%s/posts/%d", s.siteURL, post.ID)
		item := rssItem{
			Title:       post.Excerpt(),
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: utils.PlainText(string(utils.RenderText(post.Text))),
			Author:      post.User.Username,
			PubDate:     post.CreatedAt.UTC().Format(time.RFC1123Z),
		}
		if post.Group != nil {
			item.Category = post.Group.Title
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
