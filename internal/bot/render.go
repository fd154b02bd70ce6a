package bot

import (
	"fmt"
	"github.com/maxaizer/gb2260/internal/services"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	"github.com/samber/lo"
	"strings"
)

const helpText = `行政区划代码查询
/code 330105 - 查询代码
/children 330100 - 下级区划
/provinces - 全部省级区划
/find 拱墅区 - 按名称查询
/revisions - 可用版本
/use stats 2014 - 设置默认来源和版本
任意命令可附加 src=gb|stats rev=版本`

func renderDescription(q services.Query, d services.Description) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s [%s]\n", d.Division.Code, d.Division.Name, q))
	sb.WriteString(fmt.Sprintf("级别: %s", levelName(d.Division.Level())))
	if d.Province != nil {
		sb.WriteString(fmt.Sprintf("\n省级: %s", d.Province))
	}
	if d.Prefecture != nil {
		sb.WriteString(fmt.Sprintf("\n地级: %s", d.Prefecture))
	}
	return sb.String()
}

func renderDivisions(title string, divisions []gb2260.Division, limit int) string {
	if len(divisions) == 0 {
		return title + "\n(无)"
	}

	shown := divisions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	lines := lo.Map(shown, func(d gb2260.Division, _ int) string {
		return d.Code + " " + d.Name
	})

	text := title + "\n" + strings.Join(lines, "\n")
	if len(shown) < len(divisions) {
		text += fmt.Sprintf("\n... 共 %d 条", len(divisions))
	}
	return text
}

func levelName(level gb2260.Level) string {
	switch level {
	case gb2260.Province:
		return "省级"
	case gb2260.Prefecture:
		return "地级"
	default:
		return "县级"
	}
}
