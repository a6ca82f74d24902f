package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"quiz_backend/internal/model"
	"quiz_backend/internal/quiz"
	"quiz_backend/internal/quizclient"
)

type cli struct {
	client *quizclient.Client
	reader *bufio.Reader
	draft  *quizclient.Draft
	size   int
}

func main() {
	server := flag.String("server", "http://localhost:8080", "quiz 后端地址")
	labels := flag.Int("labels", 4, "每道题的答案选项数量")
	size := flag.Int("size", 5, "默认抽题数量")
	flag.Parse()

	c := &cli{
		client: quizclient.New(*server),
		reader: bufio.NewReader(os.Stdin),
		draft:  quizclient.NewDraft(*labels),
		size:   *size,
	}

	fmt.Println("== Quiz App ==")
	c.setupLoop()
}

func (c *cli) setupLoop() {
	ctx := context.Background()
	for {
		questions, err := c.client.Questions(ctx)
		if err != nil {
			fmt.Println("无法获取题目列表:", err)
			questions = nil
		}

		fmt.Printf("\n题库共 %d 道题，当前抽题数 %d\n", len(questions), c.size)
		fmt.Println("[a] 添加题目  [l] 查看题目  [d] 删除题目  [n] 设置抽题数  [s] 开始测验  [q] 退出")

		switch c.readLine("> ") {
		case "a":
			c.addQuestion(ctx)
		case "l":
			c.listQuestions(questions)
		case "d":
			c.deleteQuestion(ctx, questions)
		case "n":
			c.setQuizSize()
		case "s":
			if len(questions) == 0 {
				fmt.Println("题库为空，无法开始测验")
				continue
			}
			c.runQuiz(questions)
		case "q":
			return
		}
	}
}

func (c *cli) addQuestion(ctx context.Context) {
	c.draft.Prompt = c.readLine("题目: ")
	for _, label := range c.draft.Labels {
		c.draft.Answers[label] = c.readLine(fmt.Sprintf("答案 %s（留空跳过）: ", label))
	}
	correct := c.readLine("正确标签（逗号分隔，如 A,C）: ")
	for _, label := range strings.Split(correct, ",") {
		label = strings.ToUpper(strings.TrimSpace(label))
		if _, ok := c.draft.Correct[label]; ok {
			c.draft.Correct[label] = true
		}
	}

	if _, err := c.client.Create(ctx, c.draft); err != nil {
		// 校验失败或网络失败时保留草稿内容，提示后允许重试
		fmt.Println("添加失败:", err)
		return
	}
	fmt.Println("题目已添加")
}

func (c *cli) listQuestions(questions []model.Question) {
	for _, q := range questions {
		fmt.Printf("  #%d %s\n", q.ID, q.Question)
	}
}

func (c *cli) deleteQuestion(ctx context.Context, questions []model.Question) {
	idStr := c.readLine("要删除的题目 id: ")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		fmt.Println("无效的 id")
		return
	}

	// 删除前必须确认
	if strings.ToLower(c.readLine(fmt.Sprintf("确认删除题目 #%d？[y/N] ", id))) != "y" {
		fmt.Println("已取消")
		return
	}

	if err := c.client.Delete(ctx, uint(id)); err != nil {
		fmt.Println("删除失败:", err)
		return
	}
	fmt.Println("题目已删除")
}

func (c *cli) setQuizSize() {
	n, err := strconv.Atoi(c.readLine("抽题数量: "))
	if err != nil {
		fmt.Println("无效的数字")
		return
	}
	c.size = n
}

func (c *cli) runQuiz(pool []model.Question) {
	session, err := quiz.Start(pool, c.size)
	if err != nil {
		fmt.Println("无法开始测验:", err)
		return
	}

	for i, q := range session.Questions {
		fmt.Printf("\n第 %d/%d 题: %s\n", i+1, len(session.Questions), q.Question)

		answers := q.AnswerTexts()
		labels := make([]string, 0, len(answers))
		for label := range answers {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			fmt.Printf("  %s: %s\n", label, answers[label])
		}

		for {
			choice := strings.ToUpper(strings.TrimSpace(c.readLine("你的答案: ")))
			if _, ok := answers[choice]; !ok {
				fmt.Println("请选择以上标签之一")
				continue
			}

			correct, err := session.Answer(i, choice)
			if err != nil {
				fmt.Println(err)
				break
			}
			if correct {
				fmt.Println("Correct!")
			} else {
				fmt.Printf("Incorrect! The correct answers are: %s\n", strings.Join(q.CorrectLabels(), ", "))
			}
			break
		}
	}

	if session.Complete() {
		fmt.Printf("\n测验完成！You got %s\n", session.Result())
	}

	// 回到设置视图
	session.Restart()
}

func (c *cli) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		os.Exit(0)
	}
	return strings.TrimSpace(line)
}
