package repository

import (
	"context"
	"fmt"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"
)

// SiteConfigRepository 网站配置数据访问，表中至多一行。
// Upsert 的读改序列需要事务，因此持有完整的 Store 而不是裸 Executor。
type SiteConfigRepository struct {
	store store.Store
}

// NewSiteConfigRepository 创建网站配置仓储
func NewSiteConfigRepository(st store.Store) *SiteConfigRepository {
	return &SiteConfigRepository{store: st}
}

func siteConfigFromRow(row store.Row) models.SiteConfig {
	sc := models.SiteConfig{
		ID:                 row.Uint("id"),
		CompanyName:        row.String("company_name"),
		SiteURL:            row.String("site_url"),
		ICPNumber:          row.String("icp_number"),
		PoliceNumber:       row.String("police_number"),
		CopyrightInfo:      row.String("copyright_info"),
		CompanyDescription: row.String("company_description"),
		SEOKeywords:        row.String("seo_keywords"),
		SiteTitle:          row.String("site_title"),
		CreatedAt:          row.Time("created_at"),
		UpdatedAt:          row.Time("updated_at"),
	}
	sc.UnmarshalFriendLinks(row.String("friend_links"))
	return sc
}

// Get 读取配置单例
func (r *SiteConfigRepository) Get(ctx context.Context) (*models.SiteConfig, error) {
	res, err := r.store.Execute(ctx, `SELECT * FROM site_config LIMIT 1`)
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	sc := siteConfigFromRow(res.Rows[0])
	return &sc, nil
}

// Upsert 更新配置单例：已有行则更新，否则插入首行。
// 存在性检查和写入在同一事务内执行，并发更新不会产生第二行。
func (r *SiteConfigRepository) Upsert(ctx context.Context, sc *models.SiteConfig) error {
	links, err := sc.MarshalFriendLinks()
	if err != nil {
		return fmt.Errorf("序列化友情链接失败: %w", err)
	}

	return r.store.Tx(ctx, func(tx store.Executor) error {
		res, err := tx.Execute(ctx, `SELECT id FROM site_config LIMIT 1`)
		if err != nil {
			return err
		}

		if len(res.Rows) > 0 {
			_, err = tx.Execute(ctx,
				`UPDATE site_config SET
					company_name = ?,
					site_url = ?,
					icp_number = ?,
					police_number = ?,
					copyright_info = ?,
					company_description = ?,
					seo_keywords = ?,
					site_title = ?,
					friend_links = ?,
					updated_at = CURRENT_TIMESTAMP
				WHERE id = ?`,
				sc.CompanyName, sc.SiteURL, sc.ICPNumber, sc.PoliceNumber,
				sc.CopyrightInfo, sc.CompanyDescription, sc.SEOKeywords,
				sc.SiteTitle, links, res.Rows[0].Uint("id"))
			return err
		}

		_, err = tx.Execute(ctx,
			`INSERT INTO site_config
				(company_name, site_url, icp_number, police_number, copyright_info, company_description, seo_keywords, site_title, friend_links)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sc.CompanyName, sc.SiteURL, sc.ICPNumber, sc.PoliceNumber,
			sc.CopyrightInfo, sc.CompanyDescription, sc.SEOKeywords,
			sc.SiteTitle, links)
		return err
	})
}
