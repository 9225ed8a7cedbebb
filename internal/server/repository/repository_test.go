package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"tech-site/internal/server/models"
	"tech-site/internal/server/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 在临时目录创建一个已建表的SQLite存储
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := store.Open(context.Background(), store.Config{
		Kind: store.KindSQLite,
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "打开SQLite存储失败")
	t.Cleanup(func() { _ = st.End() })

	require.NoError(t, store.Bootstrap(context.Background(), st, store.KindSQLite), "初始化建表失败")
	return st
}

func TestProductCRUD(t *testing.T) {
	repo := NewProductRepository(newTestStore(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &models.Product{Name: "智能设备", Category: "硬件"})
	require.NoError(t, err)
	assert.Greater(t, id, uint(0))

	product, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "智能设备", product.Name)

	affected, err := repo.Update(ctx, id, &models.Product{Name: "智能设备二代", Category: "硬件"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	filtered, err := repo.GetAll(ctx, "硬件")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "智能设备二代", filtered[0].Name)

	empty, err := repo.GetAll(ctx, "不存在的分类")
	require.NoError(t, err)
	assert.Empty(t, empty, "过滤无匹配分类时应返回空列表")

	affected, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoodsPriceRoundTrip(t *testing.T) {
	repo := NewGoodsRepository(newTestStore(t))
	ctx := context.Background()

	price := decimal.RequireFromString("1999.90")
	id, err := repo.Create(ctx, &models.Goods{
		Name:  "旗舰手机",
		Price: price,
	})
	require.NoError(t, err)

	goods, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, price.Equal(goods.Price), "价格应精确往返，期望 %s 实际 %s", price, goods.Price)
	assert.Equal(t, models.DefaultCurrency, goods.Currency, "币种为空时应落默认值")
}

func TestNewsPagination(t *testing.T) {
	repo := NewNewsRepository(newTestStore(t))
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := repo.Create(ctx, &models.News{Title: fmt.Sprintf("新闻%d", i)})
		require.NoError(t, err)
	}

	items, total, err := repo.GetAll(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 10, "第二页应返回10条")

	items, total, err = repo.GetAll(ctx, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, items, 5, "最后一页应返回剩余5条")
}

func TestNewsViewsAndPopular(t *testing.T) {
	repo := NewNewsRepository(newTestStore(t))
	ctx := context.Background()

	var hotID uint
	for i := 1; i <= 7; i++ {
		id, err := repo.Create(ctx, &models.News{Title: fmt.Sprintf("新闻%d", i)})
		require.NoError(t, err)
		if i == 3 {
			hotID = id
		}
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.IncrementViews(ctx, hotID))
	}

	news, err := repo.GetByID(ctx, hotID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), news.Views)

	popular, err := repo.GetPopular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, PopularNewsLimit, "热门新闻数量应有上限")
	assert.Equal(t, hotID, popular[0].ID, "浏览最多的新闻应排第一")
}

func TestCategoryUniqueness(t *testing.T) {
	repo := NewCategoryRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Category{Name: "解决方案"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Category{Name: "解决方案"})
	assert.ErrorIs(t, err, ErrDuplicate, "重复名称应返回重复错误")
}

func TestCategoryReplaceAll(t *testing.T) {
	repo := NewCategoryRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Category{Name: "旧分类"})
	require.NoError(t, err)

	count, err := repo.ReplaceAll(ctx, []models.Category{
		{Name: "硬件"},
		{Name: "软件"},
		{Name: "硬件"}, // 重复项应被去重
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	categories, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2, "替换后旧分类应不存在")

	names := []string{categories[0].Name, categories[1].Name}
	assert.ElementsMatch(t, []string{"硬件", "软件"}, names)
}

func TestContactMessages(t *testing.T) {
	repo := NewContactRepository(newTestStore(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &models.ContactMessage{
		Name:    "张三",
		Phone:   "13812345678",
		Message: "想了解贵司产品",
	})
	require.NoError(t, err)

	message, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "张三", message.Name)

	affected, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminDefaultAccount(t *testing.T) {
	repo := NewAdminRepository(newTestStore(t))
	ctx := context.Background()

	admin, err := repo.GetByUsername(ctx, store.DefaultAdminUsername)
	require.NoError(t, err, "建表后默认管理员应存在")
	assert.NotEmpty(t, admin.Password)

	affected, err := repo.UpdatePassword(ctx, admin.ID, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	updated, err := repo.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.Password)
}

func TestUserDuplicates(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{
		Phone:    "13812345678",
		Email:    "user@example.com",
		Password: "hash",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{
		Phone:    "13812345678",
		Email:    "other@example.com",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicate, "重复手机号应返回重复错误")

	_, err = repo.Create(ctx, &models.User{
		Phone:    "13998765432",
		Email:    "user@example.com",
		Password: "hash",
	})
	assert.ErrorIs(t, err, ErrDuplicate, "重复邮箱应返回重复错误")

	user, err := repo.GetByPhone(ctx, "13812345678")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestSiteConfigUpsert(t *testing.T) {
	st := newTestStore(t)
	repo := NewSiteConfigRepository(st)
	ctx := context.Background()

	// 建表时已写入默认配置
	initial, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, initial.CompanyName)

	require.NoError(t, repo.Upsert(ctx, &models.SiteConfig{
		CompanyName: "新科技公司",
		SiteTitle:   "新标题",
		FriendLinks: []models.FriendLink{{Name: "合作伙伴", URL: "https://partner.example.com"}},
	}))
	require.NoError(t, repo.Upsert(ctx, &models.SiteConfig{
		CompanyName: "新科技公司二",
		SiteTitle:   "新标题二",
	}))

	// 多次更新后依然只有一行
	res, err := st.Execute(ctx, `SELECT COUNT(*) AS total FROM site_config`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"), "网站配置应始终只有一行")

	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "新科技公司二", cfg.CompanyName)
}

func TestSiteConfigConcurrentUpsert(t *testing.T) {
	st := newTestStore(t)
	repo := NewSiteConfigRepository(st)
	ctx := context.Background()

	// 清空默认行，令所有并发更新都从空表出发
	_, err := st.Execute(ctx, `DELETE FROM site_config`)
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Upsert(ctx, &models.SiteConfig{
				CompanyName: fmt.Sprintf("公司%d", i),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "并发更新 %d 不应报错", i)
	}

	res, err := st.Execute(ctx, `SELECT COUNT(*) AS total FROM site_config`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Rows[0].Int64("total"), "并发更新后配置仍应只有一行")
}

func TestSiteConfigFriendLinks(t *testing.T) {
	repo := NewSiteConfigRepository(newTestStore(t))
	ctx := context.Background()

	links := []models.FriendLink{
		{Name: "官网", URL: "https://www.example.com"},
		{Name: "商城", URL: "https://shop.example.com"},
	}
	require.NoError(t, repo.Upsert(ctx, &models.SiteConfig{
		CompanyName: "公司",
		FriendLinks: links,
	}))

	cfg, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, links, cfg.FriendLinks, "友情链接应完整往返")
}
