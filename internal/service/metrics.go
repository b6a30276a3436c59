package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/incial/incial-workhub-sub000/internal/dto"
	"github.com/incial/incial-workhub-sub000/internal/model"
)

// ── 聚合统计引擎 ──────────────────────────────────────────────
//
// 职责：从记录集合归约出仪表盘所需的派生指标：
// 按负责人的完成统计、排行榜、按线索来源的收入汇总、转化率。
//
// 约定：
//   - 纯函数，无内部状态，每次调用整体重算
//   - 分桶键缺失时用显式哨兵值（"Unassigned"/"Unknown"），不向分组键
//     传播空值
//   - 同一次计算内只用一种负责人键（展示名），不混用 id 桶与姓名桶；
//     需要按 id 归并时由调用方先经用户模块换算为统一姓名
//   - 除零场景（无任务、无商机）一律定义为 0
// ─────────────────────────────────────────────────────────────

// UnassignedKey 负责人缺失时的分桶哨兵值
const UnassignedKey = "Unassigned"

// ComputeAssigneeStats 按负责人展示名聚合任务统计
// 桶顺序为首次出现顺序；Dropped 等状态只计入 Total，不落入三个命名桶
func ComputeAssigneeStats(tasks []model.Task) []dto.AssigneeStat {
	statMap := make(map[string]*dto.AssigneeStat)
	var order []string

	for _, t := range tasks {
		name := t.AssigneeName
		if name == "" {
			name = UnassignedKey
		}
		stat, ok := statMap[name]
		if !ok {
			stat = &dto.AssigneeStat{Name: name}
			statMap[name] = stat
			order = append(order, name)
		}
		stat.Total++
		switch {
		case model.IsClosedStatus(t.Status):
			stat.Completed++
		case t.Status == model.TaskStatusInProgress || t.Status == model.TaskStatusInReview:
			stat.InProgress++
		case t.Status == model.TaskStatusNotStarted:
			stat.Pending++
		}
	}

	result := make([]dto.AssigneeStat, 0, len(order))
	for _, name := range order {
		stat := statMap[name]
		if stat.Total > 0 {
			stat.CompletionRate = float64(stat.Completed) / float64(stat.Total) * 100
		}
		result = append(result, *stat)
	}
	return result
}

// RankLeaderboard 按完成数降序排列统计（稳定：并列时先出现者在前）
// 前三名即领奖台位，不对具体名字做任何特判
func RankLeaderboard(stats []dto.AssigneeStat) []dto.AssigneeStat {
	return ApplySort(stats, func(a, b dto.AssigneeStat) bool {
		return a.Completed > b.Completed
	})
}

// ComputeRevenueBySource 按主要线索来源汇总商机金额
// 合计恰好为零的来源属于噪音，剔除；余下按金额降序，保留前 topN 组
func ComputeRevenueBySource(deals []model.Deal, topN int) []dto.RevenueSource {
	sumMap := make(map[string]decimal.Decimal)
	var order []string

	for i := range deals {
		source := deals[i].PrimaryLeadSource()
		if _, ok := sumMap[source]; !ok {
			order = append(order, source)
		}
		sumMap[source] = sumMap[source].Add(deals[i].DealValue)
	}

	result := make([]dto.RevenueSource, 0, len(order))
	for _, source := range order {
		total := sumMap[source]
		if total.IsZero() {
			continue
		}
		result = append(result, dto.RevenueSource{Source: source, Total: total})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	if topN > 0 && len(result) > topN {
		result = result[:topN]
	}
	return result
}

// ComputeConversionRate 成交商机占比（百分比）
// 成交状态为 onboarded/completed；无商机时为 0
func ComputeConversionRate(deals []model.Deal) float64 {
	if len(deals) == 0 {
		return 0
	}
	won := 0
	for i := range deals {
		if model.IsWonStatus(deals[i].Status) {
			won++
		}
	}
	return float64(won) / float64(len(deals)) * 100
}

// ComputeWorkTypeCounts 按工种标签统计商机数
// 标签经 model.Label 统一归一，空标签跳过；顺序为首次出现顺序
func ComputeWorkTypeCounts(deals []model.Deal) []dto.WorkTypeCount {
	countMap := make(map[string]int)
	var order []string

	for i := range deals {
		for _, label := range deals[i].WorkTypes.Labels() {
			if _, ok := countMap[label]; !ok {
				order = append(order, label)
			}
			countMap[label]++
		}
	}

	result := make([]dto.WorkTypeCount, 0, len(order))
	for _, label := range order {
		result = append(result, dto.WorkTypeCount{Label: label, Count: countMap[label]})
	}
	return result
}
