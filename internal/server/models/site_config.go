package models

import (
	"encoding/json"
	"time"
)

// FriendLink 友情链接
type FriendLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SiteConfig 网站配置，单例行，更新即有则改、无则插
type SiteConfig struct {
	ID                 uint         `json:"id"`
	CompanyName        string       `json:"company_name"`
	SiteURL            string       `json:"site_url"`
	ICPNumber          string       `json:"icp_number"`
	PoliceNumber       string       `json:"police_number"`
	CopyrightInfo      string       `json:"copyright_info"`
	CompanyDescription string       `json:"company_description"`
	SEOKeywords        string       `json:"seo_keywords"`
	SiteTitle          string       `json:"site_title"`
	FriendLinks        []FriendLink `json:"friend_links"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// MarshalFriendLinks 序列化友情链接，入库为JSON文本
func (sc *SiteConfig) MarshalFriendLinks() (string, error) {
	if len(sc.FriendLinks) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(sc.FriendLinks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalFriendLinks 反序列化友情链接，空文本视为空列表
func (sc *SiteConfig) UnmarshalFriendLinks(raw string) {
	sc.FriendLinks = nil
	if raw == "" {
		return
	}
	// 解析失败按空列表处理，历史脏数据不阻断读取
	_ = json.Unmarshal([]byte(raw), &sc.FriendLinks)
}
