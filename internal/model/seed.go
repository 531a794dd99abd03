package model

// SampleEmployees is shown by the roster until the first fetch completes.
var SampleEmployees = []Employee{
	{EmployeeID: "123456789", Name: "Rohan Mishra", Image: "https://picsum.photos/150/180", Position: "Web Developer", Email: "rohan@example.com"},
	{EmployeeID: "234567890", Name: "Sita Sharma", Image: "https://picsum.photos/150/181", Position: "Designer", Email: "sita@example.com"},
	{EmployeeID: "345678901", Name: "Amit Kumar", Image: "https://picsum.photos/150/182", Position: "Project Manager", Email: "amit@example.com"},
	{EmployeeID: "456789012", Name: "Priya Singh", Image: "https://picsum.photos/150/183", Position: "QA Engineer", Email: "priya@example.com"},
	{EmployeeID: "567890123", Name: "Rahul Verma", Image: "https://picsum.photos/150/184", Position: "DevOps Engineer", Email: "rahul@example.com"},
	{EmployeeID: "678901234", Name: "Nisha Patel", Image: "https://picsum.photos/150/185", Position: "Data Scientist", Email: "nisha@example.com"},
	{EmployeeID: "789012345", Name: "Karan Malhotra", Image: "https://picsum.photos/150/186", Position: "Frontend Developer", Email: "karan@example.com"},
	{EmployeeID: "890123456", Name: "Anita Desai", Image: "https://picsum.photos/150/187", Position: "Backend Developer", Email: "anita@example.com"},
	{EmployeeID: "901234567", Name: "Vinay Rao", Image: "https://picsum.photos/150/188", Position: "Full Stack Developer", Email: "vinay@example.com"},
	{EmployeeID: "012345678", Name: "Geeta Rani", Image: "https://picsum.photos/150/189", Position: "Systems Analyst", Email: "geeta@example.com"},
}

// SampleManagers seeds the management view.
var SampleManagers = []Manager{
	{Name: "John Doe", Employees: []Report{
		{Name: "Alice", Task: "Design", Domain: "UI/UX"},
		{Name: "Bob", Task: "Development", Domain: "Frontend"},
	}},
	{Name: "Jane Smith", Employees: []Report{
		{Name: "Charlie", Task: "Research", Domain: "AI"},
		{Name: "David", Task: "Development", Domain: "Backend"},
	}},
	{Name: "Emma Johnson", Employees: []Report{
		{Name: "Eva", Task: "Testing", Domain: "QA"},
		{Name: "Frank", Task: "Deployment", Domain: "DevOps"},
	}},
}

// WeekTasks is one week of assigned vs completed task counts.
type WeekTasks struct {
	Week      string
	Assigned  int
	Completed int
}

// Score is an employee's ranking score.
type Score struct {
	Name  string
	Score int
}

// WeeklyTasks is the built-in analytics dataset for task throughput.
var WeeklyTasks = []WeekTasks{
	{"Week 1", 10, 8},
	{"Week 2", 15, 10},
	{"Week 3", 20, 15},
	{"Week 4", 25, 20},
	{"Week 5", 30, 25},
	{"Week 6", 35, 30},
	{"Week 7", 40, 35},
}

// EmployeeRanking is the built-in analytics dataset for employee scores.
var EmployeeRanking = []Score{
	{"Rohan Mishra", 95},
	{"Sita Sharma", 90},
	{"Amit Kumar", 85},
	{"Priya Singh", 80},
	{"Rahul Verma", 78},
	{"Nisha Patel", 76},
	{"Karan Malhotra", 75},
	{"Anita Desai", 70},
	{"Vinay Rao", 68},
	{"Geeta Rani", 65},
}
