package lessons

import (
	"fmt"
	"math/rand/v2"
)

func lessonJoins() Lesson {
	return Lesson{
		ID:    13,
		Title: "JOINs",
		Theme: "School: students, classes, enrollments",
		Schema: `CREATE TABLE students (id INT, name TEXT, grade INT, gpa REAL);
CREATE TABLE classes (id INT, name TEXT, teacher TEXT, room TEXT);
CREATE TABLE enrollments (student_id INT, class_id INT, semester TEXT, grade_letter TEXT);
INSERT INTO students VALUES (1,'Emma',10,3.8),(2,'Liam',11,3.5),(3,'Sophia',10,3.9),(4,'Noah',12,3.2),(5,'Ava',11,3.7),(6,'Mason',10,2.9),(7,'Olivia',12,3.6),(8,'Ethan',11,3.1);
INSERT INTO classes VALUES (1,'Math 101','Dr. Park','A101'),(2,'English Lit','Ms. Chen','B205'),(3,'Physics','Dr. Ruiz','C110'),(4,'History','Mr. Adams','A203'),(5,'Art','Ms. Kim','D102');
INSERT INTO enrollments VALUES (1,1,'Fall','A'),(1,2,'Fall','B'),(2,1,'Fall','B'),(2,3,'Fall','A'),(3,2,'Fall','A'),(3,4,'Fall','A'),(4,3,'Fall','C'),(4,5,'Fall','B'),(5,1,'Fall','A'),(5,4,'Fall','B'),(6,2,'Fall','C'),(6,5,'Fall','A'),(7,3,'Fall','B'),(7,4,'Fall','A'),(8,1,'Fall','B'),(8,5,'Fall','C');`,
		SchemaDisplay: "students(id, name, grade, gpa)\nclasses(id, name, teacher, room)\nenrollments(student_id, class_id, semester, grade_letter)",
		DefaultQuery:  "SELECT * FROM students;",
		Exercises: []Exercise{
			{
				Instruction: "Join enrollments with students to show student names with their class_ids.",
				Hint:        "JOIN students ON enrollments.student_id = students.id",
				Solution:    "SELECT students.name, enrollments.class_id FROM enrollments JOIN students ON enrollments.student_id = students.id",
			},
			{
				Instruction: "Join all three tables to show student name, class name, and grade_letter.",
				Hint:        "Two JOINs: one for students, one for classes",
				Solution:    "SELECT students.name, classes.name, enrollments.grade_letter FROM enrollments JOIN students ON enrollments.student_id = students.id JOIN classes ON enrollments.class_id = classes.id",
			},
			{
				Instruction: "Use a LEFT JOIN to show all students and their enrollments (students with no enrollments should still appear with NULL).",
				Hint:        "FROM students LEFT JOIN enrollments ON students.id = enrollments.student_id",
				Solution:    "SELECT students.name, enrollments.class_id FROM students LEFT JOIN enrollments ON students.id = enrollments.student_id",
			},
		},
		Templates: []Template{
			writeQ("Join students and enrollments to show each student's name and their grade_letter.",
				"SELECT students.name, enrollments.grade_letter FROM enrollments JOIN students ON enrollments.student_id = students.id"),
			func(r *rand.Rand) Question {
				teacher := Pick(r, "Dr. Park", "Ms. Chen", "Dr. Ruiz", "Mr. Adams", "Ms. Kim")
				return Question{
					Type:   Write,
					Prompt: fmt.Sprintf("Find all student names enrolled in classes taught by '%s'.", teacher),
					Solution: fmt.Sprintf("SELECT students.name FROM enrollments JOIN students ON enrollments.student_id = students.id "+
						"JOIN classes ON enrollments.class_id = classes.id WHERE classes.teacher = '%s'", teacher),
				}
			},
			choice("What does INNER JOIN return?",
				"Only rows with matches in both tables", "All rows from both tables", "All rows from the left table", "All rows from the right table"),
			choice("What does LEFT JOIN return for unmatched rows?",
				"The left table row with NULLs for right table columns", "Nothing (skips unmatched)", "An error", "The right table row with NULLs"),
			fixQ("Fix this query (wrong join condition):",
				"SELECT students.name, enrollments.grade_letter FROM enrollments JOIN students ON enrollments.class_id = students.id;",
				"SELECT students.name, enrollments.grade_letter FROM enrollments JOIN students ON enrollments.student_id = students.id;"),
			fixQ("Fix this query (missing ON clause):",
				"SELECT students.name, classes.name FROM enrollments JOIN students JOIN classes;",
				"SELECT students.name, classes.name FROM enrollments JOIN students ON enrollments.student_id = students.id JOIN classes ON enrollments.class_id = classes.id;"),
		},
	}
}

func lessonSubqueries() Lesson {
	return Lesson{
		ID:    14,
		Title: "Subqueries",
		Theme: "Company: employees, departments, salaries",
		Schema: `CREATE TABLE departments (id INT, name TEXT, budget INT);
CREATE TABLE employees (id INT, name TEXT, department_id INT, salary INT, hire_date TEXT, title TEXT);
INSERT INTO departments VALUES (1,'Engineering',800000),(2,'Marketing',400000),(3,'Sales',350000),(4,'HR',250000);
INSERT INTO employees VALUES (1,'Alice',1,95000,'2020-03-15','Senior Engineer'),(2,'Bob',1,82000,'2021-06-01','Engineer'),(3,'Carol',2,68000,'2019-11-20','Marketing Lead'),(4,'Dave',3,72000,'2022-01-10','Sales Rep'),(5,'Eve',1,105000,'2018-05-22','Staff Engineer'),(6,'Frank',2,58000,'2023-02-14','Marketing Analyst'),(7,'Grace',3,65000,'2020-09-30','Sales Rep'),(8,'Hank',4,55000,'2021-08-05','HR Coordinator'),(9,'Ivy',1,78000,'2022-07-18','Engineer'),(10,'Jack',3,70000,'2019-04-12','Sales Lead'),(11,'Kate',4,62000,'2020-12-01','HR Manager'),(12,'Leo',2,73000,'2021-03-25','Marketing Manager');`,
		SchemaDisplay: "departments(id INT, name TEXT, budget INT)\nemployees(id INT, name TEXT, department_id INT, salary INT, hire_date TEXT, title TEXT)",
		DefaultQuery:  "SELECT * FROM employees;",
		Exercises: []Exercise{
			{
				Instruction: "Find all employees who earn more than the average salary.",
				Hint:        "WHERE salary > (SELECT AVG(salary) FROM employees)",
				Solution:    "SELECT name, salary FROM employees WHERE salary > (SELECT AVG(salary) FROM employees)",
			},
			{
				Instruction: "Find employees in departments with a budget over 500000.",
				Hint:        "WHERE department_id IN (SELECT id FROM departments WHERE budget > 500000)",
				Solution:    "SELECT name FROM employees WHERE department_id IN (SELECT id FROM departments WHERE budget > 500000)",
			},
			{
				Instruction: "Find the department name with the highest total salary expense.",
				Hint:        "Use a subquery with MAX and GROUP BY",
				Solution:    "SELECT d.name FROM departments d JOIN employees e ON d.id = e.department_id GROUP BY d.name ORDER BY SUM(e.salary) DESC LIMIT 1",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				thresh := Pick(r, 60000, 70000, 80000)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find names of employees earning more than %d.", thresh),
					Solution: fmt.Sprintf("SELECT name FROM employees WHERE salary > %d", thresh),
				}
			},
			func(r *rand.Rand) Question {
				budget := Pick(r, 300000, 400000, 500000)
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find employee names in departments with budget over %d.", budget),
					Solution: fmt.Sprintf("SELECT name FROM employees WHERE department_id IN (SELECT id FROM departments WHERE budget > %d)", budget),
				}
			},
			writeQ("Find employees who earn above the average salary. Show name and salary.",
				"SELECT name, salary FROM employees WHERE salary > (SELECT AVG(salary) FROM employees)"),
			choice("When does the inner subquery execute?",
				"Before the outer query", "After the outer query", "At the same time", "Only if needed"),
			choice("What does IN (SELECT ...) check?",
				"If the value is in the list returned by the subquery", "If the subquery returns TRUE", "If the value is NULL", "If the tables match"),
			fixQ("Fix this query (missing parentheses around subquery):",
				"SELECT name FROM employees WHERE salary > SELECT AVG(salary) FROM employees;",
				"SELECT name FROM employees WHERE salary > (SELECT AVG(salary) FROM employees);"),
		},
	}
}

func lessonLike() Lesson {
	return Lesson{
		ID:    15,
		Title: "LIKE, Wildcards & Text Functions",
		Theme: "Movie Quotes: characters, lines, films",
		Schema: `CREATE TABLE quotes (id INT, character_name TEXT, quote TEXT, film TEXT, year INT, genre TEXT);
INSERT INTO quotes VALUES (1,'Captain Rex','I have a feeling this mission will be legendary.','Star Battalion',2019,'Sci-Fi'),(2,'Diana Storm','The truth never hides for long.','Shadow Court',2021,'Drama'),(3,'Duke Silver','In this town, jazz is the only law.','Midnight Groove',2020,'Comedy'),(4,'Elena Frost','Winter taught me patience. Ice taught me strength.','Frozen Throne',2022,'Fantasy'),(5,'Captain Rex','We ride at dawn, or we do not ride at all.','Star Battalion 2',2022,'Sci-Fi'),(6,'Maxine Power','Power is nothing without precision.','Thunder Strike',2018,'Action'),(7,'Old Ben','I have seen things you would not believe.','Desert Wanderer',2020,'Western'),(8,'Diana Storm','Every shadow was once touched by light.','Shadow Court 2',2023,'Drama'),(9,'Zara Quick','Speed is life. Hesitation is death.','Velocity',2021,'Action'),(10,'Duke Silver','Never trust a man who does not like music.','Midnight Groove 2',2023,'Comedy'),(11,'Elena Frost','The coldest heart burns the brightest.','Frozen Throne 2',2024,'Fantasy'),(12,'Old Ben','Time is the only currency that matters.','Desert Wanderer 2',2023,'Western');`,
		SchemaDisplay: "quotes(id INT, character_name TEXT, quote TEXT, film TEXT, year INT, genre TEXT)",
		DefaultQuery:  "SELECT * FROM quotes;",
		Exercises: []Exercise{
			{
				Instruction: "Find all quotes that contain the word 'never' (case-insensitive).",
				Hint:        "Use WHERE quote LIKE '%never%'",
				Solution:    "SELECT * FROM quotes WHERE quote LIKE '%never%'",
			},
			{
				Instruction: "Find characters whose names start with 'D'.",
				Hint:        "Use WHERE character_name LIKE 'D%'",
				Solution:    "SELECT DISTINCT character_name FROM quotes WHERE character_name LIKE 'D%'",
			},
			{
				Instruction: "Concatenate character_name and quote with ': ' between them. Alias it as full_quote.",
				Hint:        "Use || for concatenation",
				Solution:    "SELECT character_name || ': ' || quote AS full_quote FROM quotes",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				word := Pick(r, "the", "never", "is", "have", "life")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find all quotes containing the word '%s'.", word),
					Solution: fmt.Sprintf("SELECT * FROM quotes WHERE quote LIKE '%%%s%%'", word),
				}
			},
			func(r *rand.Rand) Question {
				letter := Pick(r, "C", "D", "E", "M", "O", "Z")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find all distinct character names starting with '%s'.", letter),
					Solution: fmt.Sprintf("SELECT DISTINCT character_name FROM quotes WHERE character_name LIKE '%s%%'", letter),
				}
			},
			writeQ("Select all quotes and their lengths, sorted by length descending.",
				"SELECT quote, LENGTH(quote) AS len FROM quotes ORDER BY len DESC"),
			choice("What does % match in a LIKE pattern?",
				"Any number of characters (including zero)", "Exactly one character", "Only letters", "Only numbers"),
			choice("What does _ match in a LIKE pattern?",
				"Exactly one character", "Any number of characters", "Only letters", "Nothing (literal underscore)"),
			fixQ("Fix this query:",
				"SELECT * FROM quotes WHERE quote LIKE 'never';",
				"SELECT * FROM quotes WHERE quote LIKE '%never%';"),
			fixQ("Fix this query:",
				"SELECT character_name + quote FROM quotes;",
				"SELECT character_name || quote FROM quotes;"),
		},
	}
}

func lessonCase() Lesson {
	return Lesson{
		ID:    16,
		Title: "CASE Expressions & NULL Handling",
		Theme: "Weather Stations: sensors, readings, missing data",
		Schema: `CREATE TABLE readings (id INT, station TEXT, date TEXT, temp_c REAL, humidity INT, wind_speed REAL, condition TEXT);
INSERT INTO readings VALUES (1,'Alpine Summit','2024-01-15',-8.2,45,12.5,'Snow'),(2,'Alpine Summit','2024-02-10',-3.1,NULL,8.0,'Cloudy'),(3,'Desert Flats','2024-01-15',32.7,12,NULL,'Clear'),(4,'Desert Flats','2024-02-10',35.4,8,5.2,'Clear'),(5,'Coastal Bay','2024-01-15',18.3,78,22.1,'Rain'),(6,'Coastal Bay','2024-02-10',20.5,82,NULL,'Cloudy'),(7,'Forest Ridge','2024-01-15',5.0,65,3.4,'Fog'),(8,'Forest Ridge','2024-02-10',NULL,NULL,NULL,'Unknown'),(9,'Urban Central','2024-01-15',12.8,55,7.6,'Clear'),(10,'Urban Central','2024-02-10',15.2,60,9.1,'Cloudy'),(11,'Alpine Summit','2024-03-05',2.0,50,15.3,'Snow'),(12,'Desert Flats','2024-03-05',38.9,5,4.0,'Clear'),(13,'Coastal Bay','2024-03-05',NULL,75,18.7,'Rain'),(14,'Forest Ridge','2024-03-05',8.4,62,NULL,'Unknown'),(15,'Urban Central','2024-03-05',18.0,48,6.2,'Clear');`,
		SchemaDisplay: "readings(id INT, station TEXT, date TEXT, temp_c REAL, humidity INT, wind_speed REAL, condition TEXT)",
		DefaultQuery:  "SELECT * FROM readings;",
		Exercises: []Exercise{
			{
				Instruction: "Use CASE to label each reading's temp_c as 'Cold' (below 10), 'Warm' (10 to 25), or 'Hot' (above 25). " +
					"Show station, temp_c, and the label as temp_label. Exclude rows where temp_c IS NULL.",
				Hint: "CASE WHEN temp_c < 10 THEN 'Cold' WHEN temp_c <= 25 THEN 'Warm' ELSE 'Hot' END AS temp_label",
				Solution: "SELECT station, temp_c, CASE WHEN temp_c < 10 THEN 'Cold' WHEN temp_c <= 25 THEN 'Warm' ELSE 'Hot' END AS temp_label " +
					"FROM readings WHERE temp_c IS NOT NULL",
			},
			{
				Instruction: "Find all readings where humidity is missing (NULL). Show station and date.",
				Hint:        "Use IS NULL",
				Solution:    "SELECT station, date FROM readings WHERE humidity IS NULL",
			},
			{
				Instruction: "Select station, date, and wind_speed but replace NULL wind_speed values with 0. Alias the result as wind.",
				Hint:        "Use COALESCE(wind_speed, 0)",
				Solution:    "SELECT station, date, COALESCE(wind_speed, 0) AS wind FROM readings",
			},
			{
				Instruction: "Select station and condition, but return NULL when condition is 'Unknown'. Alias the result as cond.",
				Hint:        "Use NULLIF(condition, 'Unknown')",
				Solution:    "SELECT station, NULLIF(condition, 'Unknown') AS cond FROM readings",
			},
		},
		Templates: []Template{
			func(r *rand.Rand) Question {
				thresh := Pick(r, 10, 15, 20)
				return Question{
					Type: Write,
					Prompt: fmt.Sprintf("Use CASE to label temp_c: below %d is 'Cold', %d and above is 'Warm'. "+
						"Show station, temp_c, and the label as temp_label. Exclude NULL temp_c.", thresh, thresh),
					Solution: fmt.Sprintf("SELECT station, temp_c, CASE WHEN temp_c < %d THEN 'Cold' ELSE 'Warm' END AS temp_label "+
						"FROM readings WHERE temp_c IS NOT NULL", thresh),
				}
			},
			func(r *rand.Rand) Question {
				col := Pick(r, "humidity", "wind_speed")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Find all readings where %s IS NULL. Show station and date.", col),
					Solution: fmt.Sprintf("SELECT station, date FROM readings WHERE %s IS NULL", col),
				}
			},
			func(r *rand.Rand) Question {
				col := Pick(r, "wind_speed", "humidity")
				return Question{
					Type:     Write,
					Prompt:   fmt.Sprintf("Select station, date, and %s but replace NULL values with 0 using COALESCE. Alias the result as filled.", col),
					Solution: fmt.Sprintf("SELECT station, date, COALESCE(%s, 0) AS filled FROM readings", col),
				}
			},
			choice("What is the correct way to check for NULL values in SQL?",
				"IS NULL", "= NULL", "== NULL", "EQUALS NULL"),
			choice("What does COALESCE(NULL, NULL, 5, 3) return?",
				"5", "NULL", "3", "0"),
			choice("What does NULLIF(10, 10) return?",
				"NULL", "10", "0", "An error"),
			fixQ("Fix this CASE expression:",
				"SELECT station, CASE WHEN temp_c < 10 'Cold' WHEN temp_c < 25 'Warm' ELSE 'Hot' END AS label FROM readings;",
				"SELECT station, CASE WHEN temp_c < 10 THEN 'Cold' WHEN temp_c < 25 THEN 'Warm' ELSE 'Hot' END AS label FROM readings;"),
		},
	}
}
