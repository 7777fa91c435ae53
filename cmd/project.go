package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var projectYes bool

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectAdd,
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a project with its tasks and recorded sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRm,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

func init() {
	projectRmCmd.Flags().BoolVarP(&projectYes, "yes", "y", false, "Do not ask for confirmation")
	projectCmd.AddCommand(projectAddCmd, projectRmCmd, projectListCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	added, err := cat.AddProject(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !added {
		fmt.Fprintf(os.Stderr, "Project %q not added: name is empty or already exists.\n", args[0])
		os.Exit(1)
	}
	fmt.Printf("Added project %q.\n", args[0])
	return nil
}

func runProjectRm(cmd *cobra.Command, args []string) error {
	name := args[0]
	cat := openCatalog()
	if !cat.HasProject(name) {
		fmt.Fprintf(os.Stderr, "Unknown project %q.\n", name)
		os.Exit(1)
	}
	question := fmt.Sprintf("Delete project '%s'? This will remove all associated task records.", name)
	if !projectYes && !confirm(os.Stdin, os.Stdout, question) {
		fmt.Println("Cancelled.")
		return nil
	}
	if _, err := cat.DeleteProject(name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	fmt.Printf("Deleted project %q.\n", name)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	projects := cat.Projects()
	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%s (%d tasks)\n", p, len(cat.TasksFor(p)))
	}
	return nil
}
