package handlers

import (
	"time"

	"tech-site/internal/server/repository"
	"tech-site/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
)

// DashboardHandler 管理后台仪表盘处理器
type DashboardHandler struct {
	products *repository.ProductRepository
	goods    *repository.GoodsRepository
	news     *repository.NewsRepository
	contacts *repository.ContactRepository
	users    *repository.UserRepository
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(
	products *repository.ProductRepository,
	goods *repository.GoodsRepository,
	news *repository.NewsRepository,
	contacts *repository.ContactRepository,
	users *repository.UserRepository,
) *DashboardHandler {
	return &DashboardHandler{
		products: products,
		goods:    goods,
		news:     news,
		contacts: contacts,
		users:    users,
	}
}

// Overview 内容统计加服务器运行状态
func (h *DashboardHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	counts := gin.H{}
	for name, count := range map[string]func() (int64, error){
		"products": func() (int64, error) { return h.products.Count(ctx) },
		"goods":    func() (int64, error) { return h.goods.Count(ctx) },
		"news":     func() (int64, error) { return h.news.Count(ctx) },
		"messages": func() (int64, error) { return h.contacts.Count(ctx) },
		"users":    func() (int64, error) { return h.users.Count(ctx) },
	} {
		n, err := count()
		if err != nil {
			logrus.WithError(err).WithField("table", name).Error("统计数量失败")
			response.InternalError(c, "获取统计数据失败")
			return
		}
		counts[name] = n
	}

	response.Success(c, "统计数据获取成功", gin.H{
		"counts": counts,
		"system": systemStatus(),
	})
}

// systemStatus 采集主机运行状态，单项采集失败不影响整体返回
func systemStatus() gin.H {
	status := gin.H{}

	if info, err := host.Info(); err == nil {
		status["hostname"] = info.Hostname
		status["os"] = info.OS
		status["platform"] = info.Platform
		status["uptime"] = info.Uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory"] = gin.H{
			"total":        vm.Total,
			"used":         vm.Used,
			"used_percent": vm.UsedPercent,
		}
	}
	if du, err := disk.Usage("/"); err == nil {
		status["disk"] = gin.H{
			"total":        du.Total,
			"used":         du.Used,
			"used_percent": du.UsedPercent,
		}
	}
	if percents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}

	return status
}
