package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/catalog"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
)

var (
	taskYes     bool
	taskProject string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <project> <name>",
	Short: "Add a task to a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskAdd,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <project> <name>",
	Short: "Delete a task with its recorded sessions",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskRm,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runTaskList,
}

func init() {
	taskRmCmd.Flags().BoolVarP(&taskYes, "yes", "y", false, "Do not ask for confirmation")
	taskListCmd.Flags().StringVar(&taskProject, "project", "", "Only tasks of this project")
	taskCmd.AddCommand(taskAddCmd, taskRmCmd, taskListCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	project, name := args[0], args[1]
	cat := openCatalog()
	if project != "" && !cat.HasProject(project) {
		fmt.Fprintln(os.Stderr, "Please select or add a project first.")
		os.Exit(1)
	}
	added, err := cat.AddTask(project, name)
	if errors.Is(err, catalog.ErrNoProject) {
		fmt.Fprintln(os.Stderr, "Please select or add a project first.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	t := model.Task{Project: project, Name: name}
	if !added {
		fmt.Fprintf(os.Stderr, "Task %q not added: name is empty or already exists.\n", t.Key())
		os.Exit(1)
	}
	fmt.Printf("Added task %q.\n", t.Key())
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	t := model.Task{Project: args[0], Name: args[1]}
	cat := openCatalog()
	if !cat.HasTask(t) {
		fmt.Fprintf(os.Stderr, "Unknown task %q.\n", t.Key())
		os.Exit(1)
	}
	question := fmt.Sprintf("Delete task '%s'? This will remove all associated records.", t.Key())
	if !taskYes && !confirm(os.Stdin, os.Stdout, question) {
		fmt.Println("Cancelled.")
		return nil
	}
	if _, err := cat.DeleteTask(t); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Deleted task %q.\n", t.Key())
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	tasks := cat.Tasks()
	if taskProject != "" {
		tasks = cat.TasksFor(taskProject)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, t := range tasks {
		fmt.Println(t.Key())
	}
	return nil
}
