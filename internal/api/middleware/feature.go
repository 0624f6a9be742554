package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/pkg/response"
)

type FeatureChecker interface {
	HasFeatureAccess(ctx context.Context, feature string) bool
	CurrentPlan() *model.SubscriptionPlan
}

// FeatureGate 按路由参数 :feature 检查订阅功能，查询失败视为无权限
func FeatureGate(checker FeatureChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		feature := c.Param("feature")
		if feature == "" || !checker.HasFeatureAccess(c.Request.Context(), feature) {
			response.PermissionError(c, UpgradePrompt(checker.CurrentPlan()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UpgradePrompt 免费用户可升级到高级或企业版，其余只能升级到企业版
func UpgradePrompt(plan *model.SubscriptionPlan) string {
	if plan == nil || plan.Name == model.PlanFree {
		return "This feature is available for Premium and Enterprise subscribers."
	}
	return "This feature is available for Enterprise subscribers."
}
